package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, userID string, o models.Order) error {
	args := m.Called(ctx, userID, o)
	return args.Error(0)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) ByID(ctx context.Context, userID, orderID string) (models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) RowsByUser(ctx context.Context, userID string) ([]models.CartRow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.CartRow), args.Error(1)
}

func (m *mockCartRepo) Upsert(ctx context.Context, lineID, userID, productID string, quantity int) error {
	args := m.Called(ctx, lineID, userID, productID, quantity)
	return args.Error(0)
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	args := m.Called(ctx, userID, lineID, quantity)
	return args.Error(0)
}

func (m *mockCartRepo) Delete(ctx context.Context, userID, lineID string) error {
	args := m.Called(ctx, userID, lineID)
	return args.Error(0)
}

func (m *mockCartRepo) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) ByID(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, p models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type fixedShipping float64

func (f fixedShipping) ShippingCost(ctx context.Context) float64 { return float64(f) }

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) OrderCreated(ctx context.Context, o models.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func validOrderRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		ShippingAddress: models.ShippingAddress{
			FullName:     "Asha K",
			Email:        "asha@example.com",
			Phone:        "9999",
			AddressLine1: "12 MG Road",
			City:         "Pune",
			State:        "MH",
			Pincode:      "411001",
		},
		PaymentMethod: "cod",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}
	events := &mockPublisher{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{
		{ProductID: "p1", Quantity: 2, ItemID: "line-1"},
		{ProductID: "p2", Quantity: 1, ItemID: "line-2"},
	}, nil)
	products.On("ByID", mock.Anything, "p1").Return(models.Product{ID: "p1", Name: "Saree", Price: 1000}, nil)
	products.On("ByID", mock.Anything, "p2").Return(models.Product{ID: "p2", Name: "Kurta", Price: 500}, nil)
	orders.On("Create", mock.Anything, "u-1", mock.AnythingOfType("models.Order")).Return(nil)
	carts.On("Clear", mock.Anything, "u-1").Return(nil)
	events.On("OrderCreated", mock.Anything, mock.AnythingOfType("models.Order")).Return(nil)

	svc := NewOrderService(orders, carts, products, fixedShipping(99), events, nil)
	order, err := svc.Create(context.Background(), "u-1", validOrderRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderConfirmed, order.Status)
	assert.Equal(t, 2500.0, order.Subtotal)
	assert.Equal(t, 99.0, order.Shipping)
	assert.Equal(t, 2599.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Saree", order.Items[0].Name)

	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{}, nil)

	svc := NewOrderService(orders, carts, products, fixedShipping(99), nil, nil)
	_, err := svc.Create(context.Background(), "u-1", validOrderRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	orders.AssertNotCalled(t, "Create")
}

func TestCreateOrder_InvalidAddress(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{}, &mockCartRepo{}, &mockProductRepo{}, fixedShipping(99), nil, nil)

	req := validOrderRequest()
	req.ShippingAddress.Pincode = ""
	_, err := svc.Create(context.Background(), "u-1", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_MissingProductSnapshotsPlaceholder(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{
		{ProductID: "ghost", Quantity: 1},
	}, nil)
	products.On("ByID", mock.Anything, "ghost").Return(models.Product{}, repository.ErrNotFound)
	orders.On("Create", mock.Anything, "u-1", mock.AnythingOfType("models.Order")).Return(nil)
	carts.On("Clear", mock.Anything, "u-1").Return(nil)

	svc := NewOrderService(orders, carts, products, fixedShipping(0), nil, nil)
	order, err := svc.Create(context.Background(), "u-1", validOrderRequest())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Product", order.Items[0].Name)
	assert.Zero(t, order.Items[0].Price)
}

func TestCreateOrder_ExplicitShippingWins(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{
		{ProductID: "p1", Quantity: 1},
	}, nil)
	products.On("ByID", mock.Anything, "p1").Return(models.Product{ID: "p1", Name: "Saree", Price: 100}, nil)
	orders.On("Create", mock.Anything, "u-1", mock.AnythingOfType("models.Order")).Return(nil)
	carts.On("Clear", mock.Anything, "u-1").Return(nil)

	svc := NewOrderService(orders, carts, products, fixedShipping(99), nil, nil)
	req := validOrderRequest()
	req.Shipping = 50
	order, err := svc.Create(context.Background(), "u-1", req)
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.Shipping)
}

func TestCreateOrder_ClearFailureDoesNotFailCheckout(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{
		{ProductID: "p1", Quantity: 1},
	}, nil)
	products.On("ByID", mock.Anything, "p1").Return(models.Product{ID: "p1", Name: "Saree", Price: 100}, nil)
	orders.On("Create", mock.Anything, "u-1", mock.AnythingOfType("models.Order")).Return(nil)
	carts.On("Clear", mock.Anything, "u-1").Return(errors.New("db down"))

	svc := NewOrderService(orders, carts, products, fixedShipping(99), nil, nil)
	_, err := svc.Create(context.Background(), "u-1", validOrderRequest())
	assert.NoError(t, err)
}

func TestCreateOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	products := &mockProductRepo{}
	events := &mockPublisher{}

	carts.On("RowsByUser", mock.Anything, "u-1").Return([]models.CartRow{
		{ProductID: "p1", Quantity: 1},
	}, nil)
	products.On("ByID", mock.Anything, "p1").Return(models.Product{ID: "p1", Name: "Saree", Price: 100}, nil)
	orders.On("Create", mock.Anything, "u-1", mock.AnythingOfType("models.Order")).Return(nil)
	carts.On("Clear", mock.Anything, "u-1").Return(nil)
	events.On("OrderCreated", mock.Anything, mock.AnythingOfType("models.Order")).Return(errors.New("broker down"))

	svc := NewOrderService(orders, carts, products, fixedShipping(99), events, nil)
	_, err := svc.Create(context.Background(), "u-1", validOrderRequest())
	assert.NoError(t, err)
}

func TestUpdateStatus_RejectsUnknown(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{}, &mockCartRepo{}, &mockProductRepo{}, fixedShipping(0), nil, nil)
	err := svc.UpdateStatus(context.Background(), "o-1", "teleported")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestUpdateStatus_Valid(t *testing.T) {
	orders := &mockOrderRepo{}
	orders.On("UpdateStatus", mock.Anything, "o-1", models.OrderShipped).Return(nil)

	svc := NewOrderService(orders, &mockCartRepo{}, &mockProductRepo{}, fixedShipping(0), nil, nil)
	require.NoError(t, svc.UpdateStatus(context.Background(), "o-1", models.OrderShipped))
	orders.AssertExpectations(t)
}
