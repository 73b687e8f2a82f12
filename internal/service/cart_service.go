package service

import (
	"context"
	"errors"
	"time"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductSummary 购物车/订单中的商品摘要
type ProductSummary struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Price        models.Money `json:"price"`
	PriceWithTax models.Money `json:"price_with_tax"`
	Stock        int          `json:"stock"`
}

// CartItemView 购物车项输出
type CartItemView struct {
	ID         uint            `json:"id"`
	ProductID  uint            `json:"product_id"`
	Product    *ProductSummary `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  models.Money    `json:"unit_price"`
	TotalPrice models.Money    `json:"total_price"`
}

// CartView 购物车输出
type CartView struct {
	ID         string         `json:"id"`
	UserID     uint           `json:"user_id"`
	CreatedAt  time.Time      `json:"created_at"`
	Items      []CartItemView `json:"items"`
	TotalPrice models.Money   `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	taxRate     decimal.Decimal
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, taxRate decimal.Decimal) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		taxRate:     taxRate,
	}
}

// GetOrCreate 返回用户购物车，不存在时创建；created 表示本次是否新建
func (s *CartService) GetOrCreate(ctx context.Context, actor Actor) (*CartView, bool, error) {
	cart, created, err := s.getOrCreateCart(ctx, actor)
	if err != nil {
		return nil, false, err
	}
	view := s.toCartView(cart)
	return &view, created, nil
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, actor Actor, cartID string) (*CartView, error) {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	view := s.toCartView(cart)
	return &view, nil
}

// Delete 删除购物车及其全部商品
func (s *CartService) Delete(ctx context.Context, actor Actor, cartID string) error {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return err
	}
	affected, err := s.cartRepo.Delete(ctx, cart.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// ListItems 购物车项列表
func (s *CartService) ListItems(ctx context.Context, actor Actor, cartID string) ([]CartItemView, error) {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	return s.toCartView(cart).Items, nil
}

// GetItem 获取购物车项
func (s *CartService) GetItem(ctx context.Context, actor Actor, cartID string, itemID uint) (*CartItemView, error) {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	view := s.toItemView(item)
	return &view, nil
}

// AddItem 加入购物车：同一商品累加数量
func (s *CartService) AddItem(ctx context.Context, actor Actor, cartID string, productID uint, quantity int) (*CartItemView, error) {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	return s.addItem(ctx, cart, productID, quantity)
}

// AddItemToOwnCart 加入当前用户购物车，购物车不存在时自动创建
func (s *CartService) AddItemToOwnCart(ctx context.Context, actor Actor, productID uint, quantity int) (*CartItemView, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	cart, _, err := s.getOrCreateCart(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.addItem(ctx, cart, productID, quantity)
}

// UpdateItemQuantity 修改购物车项数量
func (s *CartService) UpdateItemQuantity(ctx context.Context, actor Actor, cartID string, itemID uint, quantity int) (*CartItemView, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if item.Product != nil && quantity > item.Product.Stock {
		return nil, ErrStockInsufficient
	}
	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	view := s.toItemView(item)
	return &view, nil
}

// RemoveItem 删除购物车项，不存在时返回 ErrCartItemNotFound
func (s *CartService) RemoveItem(ctx context.Context, actor Actor, cartID string, itemID uint) error {
	cart, err := s.loadOwnedCart(ctx, actor, cartID)
	if err != nil {
		return err
	}
	affected, err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) addItem(ctx context.Context, cart *models.Cart, productID uint, quantity int) (*CartItemView, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	existing, err := s.cartRepo.GetItemByProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	target := quantity
	if existing != nil {
		target += existing.Quantity
	}
	if target > product.Stock {
		return nil, ErrStockInsufficient
	}

	item, err := s.cartRepo.AddItemQuantity(ctx, cart.ID, productID, quantity, product.Stock)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrStockInsufficient
	}
	item.Product = product
	view := s.toItemView(item)
	return &view, nil
}

func (s *CartService) getOrCreateCart(ctx context.Context, actor Actor) (*models.Cart, bool, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, false, err
	}
	cart, err := s.cartRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, false, err
	}
	if cart != nil {
		return cart, false, nil
	}
	// 并发创建由 user_id 唯一索引兜底，落败方读取胜出方的购物车
	created, err := s.cartRepo.CreateIfAbsent(ctx, &models.Cart{UserID: actor.UserID})
	if err != nil {
		return nil, false, err
	}
	cart, err = s.cartRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, false, err
	}
	if cart == nil {
		return nil, false, ErrCartNotFound
	}
	return cart, created, nil
}

func (s *CartService) loadOwnedCart(ctx context.Context, actor Actor, cartID string) (*models.Cart, error) {
	if err := authorize(actor, requireUser()); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := authorize(actor, ownedBy(cart.UserID)); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) toCartView(cart *models.Cart) CartView {
	view := CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		CreatedAt: cart.CreatedAt,
		Items:     make([]CartItemView, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for i := range cart.Items {
		item := s.toItemView(&cart.Items[i])
		total = total.Add(item.TotalPrice.Decimal)
		view.Items = append(view.Items, item)
	}
	view.TotalPrice = models.NewMoneyFromDecimal(total)
	return view
}

func (s *CartService) toItemView(item *models.CartItem) CartItemView {
	view := CartItemView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		view.Product = &ProductSummary{
			ID:           item.Product.ID,
			Name:         item.Product.Name,
			Price:        item.Product.Price,
			PriceWithTax: PriceWithTax(item.Product.Price.Decimal, s.taxRate),
			Stock:        item.Product.Stock,
		}
		view.UnitPrice = item.Product.Price
		view.TotalPrice = item.Product.Price.Times(item.Quantity)
	}
	return view
}
