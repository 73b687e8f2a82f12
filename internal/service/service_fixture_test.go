package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storefrontFixture struct {
	db         *gorm.DB
	categories *CategoryService
	products   *ProductService
	carts      *CartService
	orders     *OrderService
	reviews    *ReviewService
	auth       *UserAuthService
}

func newStorefrontFixture(t *testing.T) *storefrontFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	taxRate := decimal.RequireFromString(constants.DefaultTaxRate)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret-for-service-suite", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
	}

	return &storefrontFixture{
		db:         db,
		categories: NewCategoryService(categoryRepo, productRepo),
		products:   NewProductService(productRepo, categoryRepo, taxRate),
		carts:      NewCartService(cartRepo, productRepo, taxRate),
		orders:     NewOrderService(orderRepo, cartRepo, nil),
		reviews:    NewReviewService(reviewRepo, productRepo),
		auth:       NewUserAuthService(cfg, userRepo, NewCaptchaService(config.CaptchaConfig{}), nil),
	}
}

func (f *storefrontFixture) createUser(t *testing.T, email string, isStaff bool) Actor {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		IsStaff:      isStaff,
		Status:       constants.UserStatusActive,
	}
	require.NoError(t, f.db.Create(user).Error)
	return Actor{UserID: user.ID, IsStaff: isStaff}
}

func (f *storefrontFixture) createCategory(t *testing.T, staff Actor, name string) *models.Category {
	t.Helper()
	category, err := f.categories.Create(context.Background(), staff, CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func (f *storefrontFixture) createProduct(t *testing.T, staff Actor, categoryID uint, name, price string, stock int) *ProductView {
	t.Helper()
	product, err := f.products.Create(context.Background(), staff, CreateProductInput{
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
	})
	require.NoError(t, err)
	return product
}

func requireMoney(t *testing.T, want string, got models.Money) {
	t.Helper()
	require.Equal(t, want, got.String())
}
