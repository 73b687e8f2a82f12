package repository

import (
	"context"
	"testing"
)

func TestCategoryProductCountIsRecomputedOnRead(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCategoryRepository(db)
	productRepo := NewProductRepository(db)
	ctx := context.Background()

	books := createTestCategory(t, db, "Books")
	empty := createTestCategory(t, db, "Empty")
	first := createTestProduct(t, db, books.ID, "Go in Action", "10.00", 5)
	createTestProduct(t, db, books.ID, "The Go Programming Language", "20.00", 5)
	createTestProduct(t, db, books.ID, "Concurrency in Go", "30.00", 5)

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("categories want 2 got %d", len(categories))
	}
	if categories[0].ID != books.ID || categories[0].ProductCount != 3 {
		t.Fatalf("books product_count want 3 got %+v", categories[0])
	}
	if categories[1].ID != empty.ID || categories[1].ProductCount != 0 {
		t.Fatalf("empty product_count want 0 got %+v", categories[1])
	}

	if err := productRepo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	got, err := repo.GetByID(ctx, books.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if got == nil || got.ProductCount != 2 {
		t.Fatalf("product_count after delete want 2 got %+v", got)
	}
}

func TestCategoryGetByIDMissing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCategoryRepository(db)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get missing category failed: %v", err)
	}
	if got != nil {
		t.Fatalf("missing category should be nil, got %+v", got)
	}
}
