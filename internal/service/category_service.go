package service

import (
	"context"
	"strings"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Description string
}

// List 获取分类列表（product_count 实时统计）
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// Get 获取分类
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类（店员）
func (s *CategoryService) Create(ctx context.Context, actor Actor, input CategoryInput) (*models.Category, error) {
	if err := authorize(actor, requireStaff()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return s.Get(ctx, category.ID)
}

// Update 更新分类（店员）
func (s *CategoryService) Update(ctx context.Context, actor Actor, id uint, input CategoryInput) (*models.Category, error) {
	if err := authorize(actor, requireStaff()); err != nil {
		return nil, err
	}
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete 删除分类（店员），分类下仍有商品时拒绝
func (s *CategoryService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := authorize(actor, requireStaff()); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(ctx, id)
}
