package public

import (
	handlershared "github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ListProductReviews 商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, err := h.ReviewService.List(c.Request.Context(), productID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}

// GetProductReview 评价详情
func (h *Handler) GetProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	review, err := h.ReviewService.Get(c.Request.Context(), productID, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, review)
}

// CreateProductReview 发表评价
func (h *Handler) CreateProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ReviewService.Create(c.Request.Context(), actorFrom(c), productID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, review)
}

// UpdateProductReview 修改评价（仅作者）
func (h *Handler) UpdateProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ReviewService.Update(c.Request.Context(), actorFrom(c), productID, reviewID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteProductReview 删除评价
func (h *Handler) DeleteProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(c.Request.Context(), actorFrom(c), productID, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
