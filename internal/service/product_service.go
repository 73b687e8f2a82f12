package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	taxRate      decimal.Decimal
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, taxRate decimal.Decimal) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, taxRate: taxRate}
}

// CategorySummary 商品所属分类摘要
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductView 商品输出（含税价格读取时计算）
type ProductView struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        models.Money     `json:"price"`
	PriceWithTax models.Money     `json:"price_with_tax"`
	Stock        int              `json:"stock"`
	CategoryID   uint             `json:"category_id"`
	Category     *CategorySummary `json:"category,omitempty"`
	Images       []string         `json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Images      []string
}

// UpdateProductInput 更新商品输入（nil 表示不修改）
type UpdateProductInput struct {
	CategoryID  *uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Images      []string
}

// PriceWithTax 计算含税价格，四舍五入保留两位小数
func PriceWithTax(price decimal.Decimal, taxRate decimal.Decimal) models.Money {
	return models.NewMoneyFromDecimal(price.Mul(decimal.NewFromInt(1).Add(taxRate)))
}

// ParsePrice 解析价格字符串
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrProductPriceFormat
	}
	return price, nil
}

// ToView 转换为输出结构
func (s *ProductService) ToView(product *models.Product) ProductView {
	view := ProductView{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		PriceWithTax: PriceWithTax(product.Price.Decimal, s.taxRate),
		Stock:        product.Stock,
		CategoryID:   product.CategoryID,
		Images:       []string(product.Images),
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if product.Category != nil && product.Category.ID != 0 {
		view.Category = &CategorySummary{ID: product.Category.ID, Name: product.Category.Name}
	}
	return view
}

// List 商品列表，可按分类与关键字过滤
func (s *ProductService) List(ctx context.Context, categoryID uint, search string, page, pageSize int) ([]ProductView, int64, error) {
	products, total, err := s.repo.List(ctx, repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		WithCategory: true,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.ToView(&products[i]))
	}
	return views, total, nil
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	view := s.ToView(product)
	return &view, nil
}

// Create 创建商品（店员）
func (s *ProductService) Create(ctx context.Context, actor Actor, input CreateProductInput) (*ProductView, error) {
	if err := authorize(actor, requireStaff()); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if err := validateProductFields(name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       models.NewMoneyFromDecimal(input.Price),
		Stock:       input.Stock,
		Images:      normalizeImages(input.Images),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

// Update 更新商品（店员）
func (s *ProductService) Update(ctx context.Context, actor Actor, id uint, input UpdateProductInput) (*ProductView, error) {
	if err := authorize(actor, requireStaff()); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrProductPriceInvalid
		}
		product.Price = models.NewMoneyFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Images != nil {
		product.Images = normalizeImages(input.Images)
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := s.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if err := validateProductFields(product.Name, product.Price.Decimal, product.Stock); err != nil {
		return nil, err
	}

	product.Category = nil
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

// Delete 删除商品（店员）
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := authorize(actor, requireStaff()); err != nil {
		return err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID uint) error {
	if categoryID == 0 {
		return ErrProductCategoryInvalid
	}
	exists, err := s.categoryRepo.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductCategoryInvalid
	}
	return nil
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	return firstViolation(
		fieldRule{ok: strings.TrimSpace(name) != "", err: ErrProductNameRequired},
		fieldRule{ok: !price.IsNegative(), err: ErrProductPriceInvalid},
		fieldRule{ok: stock >= 0, err: ErrProductStockInvalid},
	)
}

func normalizeImages(images []string) models.StringArray {
	result := make(models.StringArray, 0, len(images))
	for _, image := range images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
