package repository

import (
	"context"
	"testing"

	"github.com/storefront-api/internal/models"
)

func TestCartCreateIfAbsentKeepsOneCartPerUser(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	first := &models.Cart{UserID: 7}
	created, err := repo.CreateIfAbsent(ctx, first)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if !created {
		t.Fatalf("first create should insert")
	}

	second := &models.Cart{UserID: 7}
	created, err = repo.CreateIfAbsent(ctx, second)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created {
		t.Fatalf("second create should be a no-op")
	}

	var count int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("carts want 1 got %d", count)
	}

	got, err := repo.GetByUserID(ctx, 7)
	if err != nil || got == nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("cart id want %s got %s", first.ID, got.ID)
	}
}

func TestCartAddItemQuantityIncrementsExistingLine(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Tools")
	product := createTestProduct(t, db, category.ID, "Hammer", "9.90", 100)
	cart := &models.Cart{UserID: 1}
	if _, err := repo.CreateIfAbsent(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	if _, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 2, 100); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	item, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 3, 100)
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if item == nil || item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %+v", item)
	}

	loaded, err := repo.GetByID(ctx, cart.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("cart lines want 1 got %d", len(loaded.Items))
	}
	if loaded.Items[0].Product == nil || loaded.Items[0].Product.Name != "Hammer" {
		t.Fatalf("cart item product should be preloaded: %+v", loaded.Items[0])
	}
}

func TestCartAddItemQuantityRespectsCeiling(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Tools")
	product := createTestProduct(t, db, category.ID, "Drill", "49.00", 3)
	cart := &models.Cart{UserID: 3}
	if _, err := repo.CreateIfAbsent(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	if _, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 2, 3); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	item, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 2, 3)
	if err != nil {
		t.Fatalf("add over ceiling failed: %v", err)
	}
	if item != nil {
		t.Fatalf("increment above ceiling should be skipped, got %+v", item)
	}
	item, err = repo.AddItemQuantity(ctx, cart.ID, product.ID, 4, 3)
	if err != nil || item != nil {
		t.Fatalf("oversized add should be skipped, item=%+v err=%v", item, err)
	}

	stored, err := repo.GetItemByProduct(ctx, cart.ID, product.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if stored == nil || stored.Quantity != 2 {
		t.Fatalf("quantity should stay 2, got %+v", stored)
	}

	item, err = repo.AddItemQuantity(ctx, cart.ID, product.ID, 1, 3)
	if err != nil {
		t.Fatalf("add up to ceiling failed: %v", err)
	}
	if item == nil || item.Quantity != 3 {
		t.Fatalf("quantity want 3 got %+v", item)
	}
}

func TestCartDeleteRemovesItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Tools")
	product := createTestProduct(t, db, category.ID, "Saw", "15.00", 10)
	cart := &models.Cart{UserID: 2}
	if _, err := repo.CreateIfAbsent(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 1, 10); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	affected, err := repo.Delete(ctx, cart.ID)
	if err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 cart deleted, got %d", affected)
	}
	var itemCount int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("items should be removed with cart, got %d", itemCount)
	}
	got, err := repo.GetByID(ctx, cart.ID)
	if err != nil {
		t.Fatalf("get deleted cart failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted cart should be nil")
	}

	affected, err = repo.Delete(ctx, cart.ID)
	if err != nil {
		t.Fatalf("delete missing cart failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("deleting a missing cart should affect 0 rows, got %d", affected)
	}
}

func TestCartDeleteItemReportsAffectedRows(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "Tools")
	product := createTestProduct(t, db, category.ID, "Drill", "55.00", 10)
	cart := &models.Cart{UserID: 3}
	if _, err := repo.CreateIfAbsent(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item, err := repo.AddItemQuantity(ctx, cart.ID, product.ID, 1, 10)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	affected, err := repo.DeleteItem(ctx, cart.ID, item.ID)
	if err != nil || affected != 1 {
		t.Fatalf("first delete affected want 1 got %d err=%v", affected, err)
	}
	affected, err = repo.DeleteItem(ctx, cart.ID, item.ID)
	if err != nil || affected != 0 {
		t.Fatalf("second delete affected want 0 got %d err=%v", affected, err)
	}
}
