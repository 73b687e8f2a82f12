//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/storefront-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	all := models.AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		_ = db.Migrator().DropTable(all[i])
	}
	if err := db.AutoMigrate(all...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestPostgresCartUpsertAndCategoryCount(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	cartRepo := NewCartRepository(db)
	categoryRepo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Books")
	product := createTestProduct(t, db, category.ID, "Postgres Internals", "42.00", 10)

	cart := &models.Cart{UserID: 1}
	if _, err := cartRepo.CreateIfAbsent(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	created, err := cartRepo.CreateIfAbsent(ctx, &models.Cart{UserID: 1})
	if err != nil || created {
		t.Fatalf("duplicate cart should be ignored, created=%v err=%v", created, err)
	}
	if _, err := cartRepo.AddItemQuantity(ctx, cart.ID, product.ID, 1, 100); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	item, err := cartRepo.AddItemQuantity(ctx, cart.ID, product.ID, 2, 100)
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", item.Quantity)
	}

	got, err := categoryRepo.GetByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if got.ProductCount != 1 {
		t.Fatalf("product_count want 1 got %d", got.ProductCount)
	}
}
