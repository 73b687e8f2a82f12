package admin

import "github.com/storefront-api/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于店员后台 API，路由需挂载 JWT 与 RBAC 中间件。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
