package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// ReviewInput 评价写入参数
type ReviewInput struct {
	Rating  int
	Comment string
}

// ReviewView 评价输出
type ReviewView struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewService 商品评价服务
type ReviewService struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{repo: repo, productRepo: productRepo}
}

// List 商品评价列表（公开）
func (s *ReviewService) List(ctx context.Context, productID uint, page, pageSize int) ([]ReviewView, int64, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, 0, err
	}
	reviews, total, err := s.repo.List(ctx, repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, toReviewView(&reviews[i]))
	}
	return views, total, nil
}

// Get 评价详情（公开）
func (s *ReviewService) Get(ctx context.Context, productID, reviewID uint) (*ReviewView, error) {
	review, err := s.load(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}
	view := toReviewView(review)
	return &view, nil
}

// Create 登录用户发表评价
func (s *ReviewService) Create(ctx context.Context, actor Actor, productID uint, input ReviewInput) (*ReviewView, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := validateReview(input); err != nil {
		return nil, err
	}
	review := &models.Review{
		ProductID: productID,
		UserID:    actor.UserID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	logger.Infow("review_created", "review_id", review.ID, "product_id", productID, "user_id", actor.UserID)
	view := toReviewView(review)
	return &view, nil
}

// Update 作者修改评价
func (s *ReviewService) Update(ctx context.Context, actor Actor, productID, reviewID uint, input ReviewInput) (*ReviewView, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, err
	}
	review, err := s.load(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, ownedBy(review.UserID)); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return nil, ErrReviewAuthorOnly
		}
		return nil, err
	}
	if err := validateReview(input); err != nil {
		return nil, err
	}
	review.Rating = input.Rating
	review.Comment = strings.TrimSpace(input.Comment)
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	view := toReviewView(review)
	return &view, nil
}

// Delete 作者或店员删除评价
func (s *ReviewService) Delete(ctx context.Context, actor Actor, productID, reviewID uint) error {
	if err := authorize(actor, requireUser()); err != nil {
		return err
	}
	review, err := s.load(ctx, productID, reviewID)
	if err != nil {
		return err
	}
	if err := authorize(actor, ownedByOrStaff(review.UserID)); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return ErrReviewAuthorOnly
		}
		return err
	}
	if err := s.repo.Delete(ctx, review.ID); err != nil {
		return err
	}
	logger.Infow("review_deleted", "review_id", review.ID, "product_id", productID, "actor_id", actor.UserID)
	return nil
}

func (s *ReviewService) load(ctx context.Context, productID, reviewID uint) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *ReviewService) ensureProduct(ctx context.Context, productID uint) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return nil
}

func validateReview(input ReviewInput) error {
	return firstViolation(
		fieldRule{ok: input.Rating >= minReviewRating && input.Rating <= maxReviewRating, err: ErrRatingInvalid},
	)
}

func toReviewView(review *models.Review) ReviewView {
	return ReviewView{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
