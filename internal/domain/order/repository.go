package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository persists placed orders
type OrderRepository interface {
	// FindByID returns shared.ErrNotFound when the order does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIdempotencyKey returns shared.ErrNotFound when no order used the key
	FindByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	// Create inserts a new order with its lines
	Create(ctx context.Context, order *Order) error
}
