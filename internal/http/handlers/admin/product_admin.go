package admin

import (
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProductRequest 创建商品请求
// 价格使用字符串传输，避免浮点精度丢失。
type CreateProductRequest struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	CategoryID  *uint    `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	price, err := service.ParsePrice(req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	product, err := h.ProductService.Create(c.Request.Context(), actorFrom(c), service.CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		Images:      req.Images,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Infow("admin_product_created", "operator_user_id", currentUserID(c), "product_id", product.ID)
	response.Success(c, product)
}

// UpdateProduct 更新商品（仅修改传入字段）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := service.UpdateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if req.Price != nil {
		price, err := service.ParsePrice(*req.Price)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.Price = decimalPtr(price)
	}

	product, err := h.ProductService.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Infow("admin_product_deleted", "operator_user_id", currentUserID(c), "product_id", id)
	response.Success(c, nil)
}

func decimalPtr(value decimal.Decimal) *decimal.Decimal {
	return &value
}
