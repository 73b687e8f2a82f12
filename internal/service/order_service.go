package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/queue"
	"github.com/storefront-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView 订单项输出
type OrderItemView struct {
	ID          uint         `json:"id"`
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unit_price"`
	TotalPrice  models.Money `json:"total_price"`
}

// OrderView 订单输出
type OrderView struct {
	ID         uint            `json:"id"`
	OrderNo    string          `json:"order_no"`
	UserID     uint            `json:"user_id"`
	Status     string          `json:"status"`
	TotalPrice models.Money    `json:"total_price"`
	Items      []OrderItemView `json:"items"`
	CanceledAt *time.Time      `json:"canceled_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ListOrdersInput 订单列表查询参数
type ListOrdersInput struct {
	Page     int
	PageSize int
	Status   string
	OrderNo  string
	UserID   uint
	// 下单时间范围，闭区间
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
		now:         time.Now,
	}
}

// PlaceOrder 将购物车转换为订单：创建订单、快照单价、删除购物车在同一事务内完成
func (s *OrderService) PlaceOrder(ctx context.Context, actor Actor, cartID string) (*OrderView, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByID(ctx, cartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if err := authorize(actor, ownedBy(cart.UserID)); err != nil {
			if errors.Is(err, ErrNotOwner) {
				return ErrCartNotFound
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		items, total, err := buildOrderItems(cart.Items)
		if err != nil {
			return err
		}
		order = &models.Order{
			OrderNo:    generateOrderNo(s.now()),
			UserID:     cart.UserID,
			Status:     constants.OrderStatusUnfulfilled,
			TotalPrice: models.NewMoneyFromDecimal(total),
		}
		if err := orderRepo.Create(ctx, order, items); err != nil {
			return err
		}
		// 购物车已被并发下单消费时整体回滚
		affected, err := cartRepo.Delete(ctx, cart.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_price", order.TotalPrice.String(),
	)
	notifyOrderStatus(s.queueClient, order, queue.OrderEventPlaced)
	view := toOrderView(order)
	return &view, nil
}

// Cancel 取消订单：仅待处理与处理中状态允许取消
func (s *OrderService) Cancel(ctx context.Context, actor Actor, orderID uint) (*OrderView, error) {
	order, err := s.loadVisibleOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if !isCancellable(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}

	now := s.now()
	affected, err := s.orderRepo.UpdateStatusFrom(ctx, order.ID, cancellableStatuses, constants.OrderStatusCancelled, map[string]interface{}{
		"canceled_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderCancelNotAllowed
	}

	updated, err := s.reload(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	logger.Infow("order_cancelled", "order_id", updated.ID, "order_no", updated.OrderNo, "actor_id", actor.UserID)
	notifyOrderStatus(s.queueClient, updated, queue.OrderEventCancelled)
	view := toOrderView(updated)
	return &view, nil
}

// UpdateStatus 店员直接设置订单状态，可越过状态机限制
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uint, status string) (*OrderView, error) {
	if err := authorize(actor, requireStaff()); err != nil {
		return nil, err
	}
	target := normalizeOrderStatus(status)
	if !isValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.reload(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		view := toOrderView(order)
		return &view, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		logger.Warnw("order_status_override",
			"order_id", order.ID,
			"from", order.Status,
			"to", target,
			"actor_id", actor.UserID,
		)
	}

	now := s.now()
	updates := map[string]interface{}{"updated_at": now}
	if target == constants.OrderStatusCancelled {
		updates["canceled_at"] = now
	} else {
		updates["canceled_at"] = nil
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, target, updates); err != nil {
		return nil, err
	}

	updated, err := s.reload(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	event := queue.OrderEventStatusChanged
	if target == constants.OrderStatusCancelled {
		event = queue.OrderEventCancelled
	}
	notifyOrderStatus(s.queueClient, updated, event)
	view := toOrderView(updated)
	return &view, nil
}

// List 订单列表：店员可查看全部订单，普通用户仅查看自己的订单
func (s *OrderService) List(ctx context.Context, actor Actor, input ListOrdersInput) ([]OrderView, int64, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, 0, err
	}
	status := normalizeOrderStatus(input.Status)
	if status != "" && !isValidOrderStatus(status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	if input.CreatedFrom != nil && input.CreatedTo != nil && input.CreatedFrom.After(*input.CreatedTo) {
		return nil, 0, ErrOrderCreatedRange
	}
	filter := repository.OrderListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		Status:      status,
		OrderNo:     strings.TrimSpace(input.OrderNo),
		UserID:      input.UserID,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	}
	if !actor.IsStaff {
		filter.UserID = actor.UserID
	}
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}
	return views, total, nil
}

// Get 订单详情
func (s *OrderService) Get(ctx context.Context, actor Actor, orderID uint) (*OrderView, error) {
	order, err := s.loadVisibleOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	view := toOrderView(order)
	return &view, nil
}

// Delete 删除订单及其订单项（店员）
func (s *OrderService) Delete(ctx context.Context, actor Actor, orderID uint) error {
	if err := authorize(actor, requireStaff()); err != nil {
		return err
	}
	order, err := s.reload(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Delete(ctx, order.ID)
	}); err != nil {
		return err
	}
	logger.Infow("order_deleted", "order_id", order.ID, "order_no", order.OrderNo, "actor_id", actor.UserID)
	return nil
}

func (s *OrderService) reload(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// loadVisibleOrder 加载当前操作者可见的订单，非本人订单按不存在处理
func (s *OrderService) loadVisibleOrder(ctx context.Context, actor Actor, orderID uint) (*models.Order, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, err
	}
	order, err := s.reload(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, ownedByOrStaff(order.UserID)); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func buildOrderItems(cartItems []models.CartItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	total := decimal.Zero
	for _, cartItem := range cartItems {
		if cartItem.Product == nil || cartItem.Product.ID == 0 {
			return nil, decimal.Zero, ErrProductNotFound
		}
		if cartItem.Quantity <= 0 {
			return nil, decimal.Zero, ErrQuantityInvalid
		}
		unitPrice := cartItem.Product.Price
		lineTotal := unitPrice.Times(cartItem.Quantity)
		total = total.Add(lineTotal.Decimal)
		items = append(items, models.OrderItem{
			ProductID:   cartItem.ProductID,
			ProductName: cartItem.Product.Name,
			UnitPrice:   unitPrice,
			Quantity:    cartItem.Quantity,
			TotalPrice:  lineTotal,
		})
	}
	return items, total, nil
}

func isCancellable(status string) bool {
	for _, candidate := range cancellableStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

func toOrderView(order *models.Order) OrderView {
	view := OrderView{
		ID:         order.ID,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		Items:      make([]OrderItemView, 0, len(order.Items)),
		CanceledAt: order.CanceledAt,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return view
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("SF%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
