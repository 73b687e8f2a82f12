package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// consumedCartRepository 读取购物车后立即在同一事务内删除，模拟并发下单先行提交
type consumedCartRepository struct {
	repository.CartRepository
}

func (r *consumedCartRepository) WithTx(tx *gorm.DB) repository.CartRepository {
	return &consumedCartRepository{CartRepository: r.CartRepository.WithTx(tx)}
}

func (r *consumedCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	cart, err := r.CartRepository.GetByID(ctx, id)
	if err != nil || cart == nil {
		return cart, err
	}
	if _, err := r.CartRepository.Delete(ctx, id); err != nil {
		return nil, err
	}
	return cart, nil
}

func placeTestOrder(t *testing.T, f *storefrontFixture, user Actor, productID uint, quantity int) *OrderView {
	t.Helper()
	ctx := context.Background()
	item, err := f.carts.AddItemToOwnCart(ctx, user, productID, quantity)
	require.NoError(t, err)
	require.NotZero(t, item.ID)
	cart, _, err := f.carts.GetOrCreate(ctx, user)
	require.NoError(t, err)
	order, err := f.orders.PlaceOrder(ctx, user, cart.ID)
	require.NoError(t, err)
	return order
}

func TestPlaceOrderSnapshotsPricesAndRemovesCart(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "buyer@example.com", false)
	category := f.createCategory(t, staff, "Audio")
	productA := f.createProduct(t, staff, category.ID, "Headphones", "10.00", 10)
	productB := f.createProduct(t, staff, category.ID, "Cable", "5.00", 10)

	_, err := f.carts.AddItemToOwnCart(ctx, user, productA.ID, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItemToOwnCart(ctx, user, productB.ID, 1)
	require.NoError(t, err)
	cart, _, err := f.carts.GetOrCreate(ctx, user)
	require.NoError(t, err)

	order, err := f.orders.PlaceOrder(ctx, user, cart.ID)
	require.NoError(t, err)
	require.Equal(t, constants.OrderStatusUnfulfilled, order.Status)
	require.Equal(t, user.UserID, order.UserID)
	require.NotEmpty(t, order.OrderNo)
	requireMoney(t, "25.00", order.TotalPrice)
	require.Len(t, order.Items, 2)

	_, err = f.carts.Get(ctx, user, cart.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
	var itemCount int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error)
	require.Zero(t, itemCount)

	newPrice := decimal.RequireFromString("99.00")
	_, err = f.products.Update(ctx, staff, productA.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	reloaded, err := f.orders.Get(ctx, user, order.ID)
	require.NoError(t, err)
	requireMoney(t, "25.00", reloaded.TotalPrice)
	for _, item := range reloaded.Items {
		if item.ProductID == productA.ID {
			requireMoney(t, "10.00", item.UnitPrice)
			require.Equal(t, 2, item.Quantity)
		}
	}

	next, created, err := f.carts.GetOrCreate(ctx, user)
	require.NoError(t, err)
	require.True(t, created)
	require.NotEqual(t, cart.ID, next.ID)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "buyer@example.com", false)
	cart, _, err := f.carts.GetOrCreate(ctx, user)
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(ctx, user, cart.ID)
	require.ErrorIs(t, err, ErrCartEmpty)
	require.ErrorIs(t, err, ErrValidation)

	var orderCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	_, err = f.carts.Get(ctx, user, cart.ID)
	require.NoError(t, err)
}

func TestPlaceOrderRollsBackWhenCartAlreadyConsumed(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "buyer@example.com", false)
	category := f.createCategory(t, staff, "Books")
	product := f.createProduct(t, staff, category.ID, "Atlas", "20.00", 5)

	_, err := f.carts.AddItemToOwnCart(ctx, user, product.ID, 1)
	require.NoError(t, err)
	cart, _, err := f.carts.GetOrCreate(ctx, user)
	require.NoError(t, err)

	orders := NewOrderService(
		repository.NewOrderRepository(f.db),
		&consumedCartRepository{CartRepository: repository.NewCartRepository(f.db)},
		nil,
	)
	_, err = orders.PlaceOrder(ctx, user, cart.ID)
	require.ErrorIs(t, err, ErrCartNotFound)

	var orderCount, orderItemCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&orderItemCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, orderItemCount)

	// 事务回滚后原购物车仍可正常下单
	order, err := f.orders.PlaceOrder(ctx, user, cart.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
}

func TestPlaceOrderRejectsForeignCart(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", false)
	other := f.createUser(t, "other@example.com", false)
	cart, _, err := f.carts.GetOrCreate(ctx, owner)
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(ctx, other, cart.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
	_, err = f.orders.PlaceOrder(ctx, owner, "missing-cart")
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestCancelOrderFollowsStatus(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "buyer@example.com", false)
	category := f.createCategory(t, staff, "Toys")
	product := f.createProduct(t, staff, category.ID, "Kite", "12.00", 10)

	order := placeTestOrder(t, f, user, product.ID, 1)
	cancelled, err := f.orders.Cancel(ctx, user, order.ID)
	require.NoError(t, err)
	require.Equal(t, constants.OrderStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CanceledAt)

	_, err = f.orders.Cancel(ctx, user, order.ID)
	require.ErrorIs(t, err, ErrOrderCancelNotAllowed)

	delivered := placeTestOrder(t, f, user, product.ID, 1)
	_, err = f.orders.UpdateStatus(ctx, staff, delivered.ID, constants.OrderStatusDelivered)
	require.NoError(t, err)
	_, err = f.orders.Cancel(ctx, user, delivered.ID)
	require.ErrorIs(t, err, ErrOrderCancelNotAllowed)

	reloaded, err := f.orders.Get(ctx, user, delivered.ID)
	require.NoError(t, err)
	require.Equal(t, constants.OrderStatusDelivered, reloaded.Status)
	require.Nil(t, reloaded.CanceledAt)
}

func TestOrderVisibilityAndStaffOperations(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	owner := f.createUser(t, "owner@example.com", false)
	other := f.createUser(t, "other@example.com", false)
	category := f.createCategory(t, staff, "Sports")
	product := f.createProduct(t, staff, category.ID, "Ball", "8.00", 10)
	order := placeTestOrder(t, f, owner, product.ID, 2)

	_, err := f.orders.Get(ctx, other, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
	_, err = f.orders.Cancel(ctx, other, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	views, total, err := f.orders.List(ctx, other, ListOrdersInput{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, views)

	views, total, err = f.orders.List(ctx, staff, ListOrdersInput{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, views, 1)

	_, err = f.orders.UpdateStatus(ctx, owner, order.ID, constants.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrStaffRequired)
	_, err = f.orders.UpdateStatus(ctx, staff, order.ID, "shipped")
	require.ErrorIs(t, err, ErrOrderStatusInvalid)

	require.ErrorIs(t, f.orders.Delete(ctx, owner, order.ID), ErrStaffRequired)
	require.NoError(t, f.orders.Delete(ctx, staff, order.ID))
	_, err = f.orders.Get(ctx, staff, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusOverridesStateMachine(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "buyer@example.com", false)
	category := f.createCategory(t, staff, "Games")
	product := f.createProduct(t, staff, category.ID, "Chess", "30.00", 10)
	order := placeTestOrder(t, f, user, product.ID, 1)

	cancelled, err := f.orders.UpdateStatus(ctx, staff, order.ID, constants.OrderStatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, cancelled.CanceledAt)

	reopened, err := f.orders.UpdateStatus(ctx, staff, order.ID, " IN_PROGRESS ")
	require.NoError(t, err)
	require.Equal(t, constants.OrderStatusInProgress, reopened.Status)
	require.Nil(t, reopened.CanceledAt)
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{constants.OrderStatusUnfulfilled, constants.OrderStatusInProgress, true},
		{constants.OrderStatusUnfulfilled, constants.OrderStatusCancelled, true},
		{constants.OrderStatusInProgress, constants.OrderStatusDelivered, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusUnfulfilled, false},
		{constants.OrderStatusUnfulfilled, constants.OrderStatusDelivered, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, isTransitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
	require.True(t, isCancellable(constants.OrderStatusInProgress))
	require.False(t, isCancellable(constants.OrderStatusDelivered))
}

func TestGenerateOrderNoFormat(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	no := generateOrderNo(now)
	require.True(t, strings.HasPrefix(no, "SF20240506070809"))
	require.Len(t, no, len("SF20240506070809")+6)
}

func TestListOrdersFiltersByCreatedRange(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "buyer@example.com", false)
	category := f.createCategory(t, staff, "Garden")
	product := f.createProduct(t, staff, category.ID, "Shovel", "18.00", 5)
	placeTestOrder(t, f, user, product.ID, 1)

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	orders, total, err := f.orders.List(ctx, staff, ListOrdersInput{Page: 1, PageSize: 10, CreatedFrom: &past, CreatedTo: &future})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, orders, 1)

	orders, total, err = f.orders.List(ctx, staff, ListOrdersInput{Page: 1, PageSize: 10, CreatedFrom: &future})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, orders)

	_, _, err = f.orders.List(ctx, staff, ListOrdersInput{Page: 1, PageSize: 10, CreatedFrom: &future, CreatedTo: &past})
	require.ErrorIs(t, err, ErrOrderCreatedRange)
	require.ErrorIs(t, err, ErrValidation)
}
