package repository

import (
	"context"
	"testing"

	"github.com/storefront-api/internal/models"
)

func TestProductListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	books := createTestCategory(t, db, "Books")
	music := createTestCategory(t, db, "Music")
	createTestProduct(t, db, books.ID, "Learning Go", "30.00", 3)
	createTestProduct(t, db, books.ID, "Database Internals", "45.00", 3)
	createTestProduct(t, db, music.ID, "Go West", "12.00", 3)

	products, total, err := repo.List(ctx, ProductListFilter{Page: 1, PageSize: 20, CategoryID: books.ID, WithCategory: true})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("books want 2 got total=%d len=%d", total, len(products))
	}
	if products[0].Category == nil || products[0].Category.Name != "Books" {
		t.Fatalf("category should be preloaded: %+v", products[0].Category)
	}

	products, total, err = repo.List(ctx, ProductListFilter{Page: 1, PageSize: 20, Search: "go"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("search want 2 got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ctx, ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(products) != 1 {
		t.Fatalf("page 2 want 1 of 3 got total=%d len=%d", total, len(products))
	}
}

func TestProductSoftDeleteHidesProduct(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Garden")
	product := createTestProduct(t, db, category.ID, "Rake", "14.00", 2)

	count, err := repo.CountByCategory(ctx, category.ID)
	if err != nil || count != 1 {
		t.Fatalf("count want 1 got %d err=%v", count, err)
	}
	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	got, err := repo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted product should be hidden, got %+v", got)
	}
	count, err = repo.CountByCategory(ctx, category.ID)
	if err != nil || count != 0 {
		t.Fatalf("count after delete want 0 got %d err=%v", count, err)
	}

	var raw int64
	if err := db.Unscoped().Model(&models.Product{}).Where("id = ?", product.ID).Count(&raw).Error; err != nil {
		t.Fatalf("unscoped count failed: %v", err)
	}
	if raw != 1 {
		t.Fatalf("soft deleted row should remain, got %d", raw)
	}
}
