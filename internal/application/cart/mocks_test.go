package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*order.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockFormTokenVerifier is a mock implementation of parcel.FormTokenVerifier
type MockFormTokenVerifier struct {
	mock.Mock
}

func (m *MockFormTokenVerifier) Verify(token, action string) error {
	args := m.Called(token, action)
	return args.Error(0)
}

// passthroughTransactor hands the mocks straight to the unit of work
type passthroughTransactor struct {
	carts  cart.CartRepository
	orders order.OrderRepository
}

func (t passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, carts cart.CartRepository, orders order.OrderRepository) error) error {
	return fn(ctx, t.carts, t.orders)
}
