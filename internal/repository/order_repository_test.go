package repository

import (
	"context"
	"testing"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"

	"github.com/shopspring/decimal"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:    orderNo,
		UserID:     userID,
		Status:     status,
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}
	items := []models.OrderItem{{
		ProductID:   1,
		ProductName: "Widget",
		UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Quantity:    1,
		TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}}
	if err := repo.Create(context.Background(), order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderUpdateStatusFromGuardsCurrentStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	order := createTestOrder(t, repo, "SF-GUARD", 1, constants.OrderStatusDelivered)

	affected, err := repo.UpdateStatusFrom(ctx, order.ID,
		[]string{constants.OrderStatusUnfulfilled, constants.OrderStatusInProgress},
		constants.OrderStatusCancelled, nil)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("delivered order should not be updated, affected=%d", affected)
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want delivered got %s", got.Status)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items should be preloaded, got %d", len(got.Items))
	}
}

func TestOrderListFiltersByUserAndStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	createTestOrder(t, repo, "SF-1", 1, constants.OrderStatusUnfulfilled)
	createTestOrder(t, repo, "SF-2", 1, constants.OrderStatusCancelled)
	createTestOrder(t, repo, "SF-3", 2, constants.OrderStatusUnfulfilled)

	orders, total, err := repo.List(ctx, OrderListFilter{UserID: 1, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("user orders want 2 got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.List(ctx, OrderListFilter{Status: constants.OrderStatusUnfulfilled, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(orders) != 1 {
		t.Fatalf("status filter want total=2 page len=1 got total=%d len=%d", total, len(orders))
	}
}

func TestOrderDeleteRemovesItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	order := createTestOrder(t, repo, "SF-DEL", 1, constants.OrderStatusUnfulfilled)

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("order items should be removed, got %d", count)
	}
}

func TestOrderResolveReceiver(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	user := &models.User{Email: "buyer@example.com", PasswordHash: "hash", Locale: "en-US"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := createTestOrder(t, repo, "SF-RCV", user.ID, constants.OrderStatusUnfulfilled)

	receiver, err := repo.ResolveReceiverByOrderID(ctx, order.ID)
	if err != nil {
		t.Fatalf("resolve receiver failed: %v", err)
	}
	if receiver == nil || receiver.Email != "buyer@example.com" || receiver.Locale != "en-US" {
		t.Fatalf("unexpected receiver: %+v", receiver)
	}
}
