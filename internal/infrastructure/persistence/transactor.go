package persistence

import (
	"context"

	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormCheckoutTransactor runs cart and order writes in a single transaction
type GormCheckoutTransactor struct {
	db *gorm.DB
}

// NewGormCheckoutTransactor creates a new GormCheckoutTransactor
func NewGormCheckoutTransactor(db *gorm.DB) *GormCheckoutTransactor {
	return &GormCheckoutTransactor{db: db}
}

// WithinTransaction calls fn with repositories bound to one transaction.
// Returning an error from fn rolls back every write it made.
func (t *GormCheckoutTransactor) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, carts cart.CartRepository, orders order.OrderRepository) error,
) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormCartRepository(tx), NewGormOrderRepository(tx))
	})
}
