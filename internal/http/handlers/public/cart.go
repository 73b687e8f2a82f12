package public

import (
	"github.com/storefront-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加购请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CartItemQuantityRequest 修改数量请求
type CartItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CreateCart 获取或创建当前用户购物车
func (h *Handler) CreateCart(c *gin.Context) {
	cart, created, err := h.CartService.GetOrCreate(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"cart":    cart,
		"created": created,
	})
}

// GetCart 购物车详情
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.Get(c.Request.Context(), actorFrom(c), c.Param("cart_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCart 删除购物车
func (h *Handler) DeleteCart(c *gin.Context) {
	if err := h.CartService.Delete(c.Request.Context(), actorFrom(c), c.Param("cart_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCartItems 购物车项列表
func (h *Handler) ListCartItems(c *gin.Context) {
	items, err := h.CartService.ListItems(c.Request.Context(), actorFrom(c), c.Param("cart_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetCartItem 购物车项详情
func (h *Handler) GetCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	item, err := h.CartService.GetItem(c.Request.Context(), actorFrom(c), c.Param("cart_id"), itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// AddCartItem 加购（同一商品累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CartService.AddItem(c.Request.Context(), actorFrom(c), c.Param("cart_id"), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// AddItemToOwnCart 加购到当前用户购物车（不存在时自动创建）
func (h *Handler) AddItemToOwnCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CartService.AddItemToOwnCart(c.Request.Context(), actorFrom(c), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	var req CartItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CartService.UpdateItemQuantity(c.Request.Context(), actorFrom(c), c.Param("cart_id"), itemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), actorFrom(c), c.Param("cart_id"), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
