package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
)

var (
	// ErrEmptyCart rejects checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBadStatus rejects an unknown order status transition.
	ErrBadStatus = errors.New("invalid order status")
)

// OrderRepository defines the persistence operations required by the
// order service.
type OrderRepository interface {
	Create(ctx context.Context, userID string, o models.Order) error
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error)
	ByID(ctx context.Context, userID, orderID string) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// EventPublisher emits order lifecycle events to a message broker.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o models.Order) error
}

// ShippingCoster resolves the shipping cost applied at checkout.
type ShippingCoster interface {
	ShippingCost(ctx context.Context) float64
}

// OrderService implements checkout and order history.
type OrderService struct {
	orders   OrderRepository
	carts    CartRepository
	products ProductRepository
	settings ShippingCoster
	events   EventPublisher
	validate *validator.Validate
	log      *zap.Logger
}

// NewOrderService constructs an OrderService. events may be nil when
// no broker is configured.
func NewOrderService(
	orders OrderRepository,
	carts CartRepository,
	products ProductRepository,
	settings ShippingCoster,
	events EventPublisher,
	log *zap.Logger,
) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		settings: settings,
		events:   events,
		validate: validator.New(),
		log:      log,
	}
}

// Create turns the user's current cart into an order: validates the
// shipping address, snapshots and prices the cart lines, applies the
// shipping cost, persists the order, and empties the cart. The
// order-created event is published best-effort.
func (s *OrderService) Create(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Order{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	rows, err := s.carts.RowsByUser(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(rows) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		item := models.OrderItem{ProductID: row.ProductID, Name: "Product", Quantity: row.Quantity}
		if p, err := s.products.ByID(ctx, row.ProductID); err == nil {
			item.Name = p.Name
			item.Price = p.Price
		} else if !errors.Is(err, repository.ErrNotFound) {
			return models.Order{}, err
		}
		subtotal += item.Price * float64(item.Quantity)
		items = append(items, item)
	}

	shipping := req.Shipping
	if shipping <= 0 {
		shipping = s.settings.ShippingCost(ctx)
	}

	order := models.Order{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Status:          models.OrderConfirmed,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal + shipping,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := s.orders.Create(ctx, userID, order); err != nil {
		return models.Order{}, err
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.log.Warn("clear cart after checkout failed", zap.Error(err))
	}
	if s.events != nil {
		if err := s.events.OrderCreated(ctx, order); err != nil {
			s.log.Warn("publish order event failed", zap.String("orderId", order.ID), zap.Error(err))
		}
	}
	return order, nil
}

// List returns the user's order history page.
func (s *OrderService) List(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error) {
	return s.orders.ListByUser(ctx, userID, page, limit)
}

// Get loads one of the user's orders.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (models.Order, error) {
	return s.orders.ByID(ctx, userID, orderID)
}

// UpdateStatus transitions an order to confirmed, shipped or
// delivered.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !models.ValidOrderStatus(status) {
		return ErrBadStatus
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}
