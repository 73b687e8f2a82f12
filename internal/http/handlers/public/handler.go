package public

import "github.com/storefront-api/internal/provider"

// Handler 商城前台接口：目录浏览、认证、购物车、订单与评价
type Handler struct {
	*provider.Container
}

// New 创建前台接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
