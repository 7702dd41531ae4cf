package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository persists carts
type CartRepository interface {
	// FindByID returns shared.ErrNotFound when the cart does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	// Save inserts or replaces the cart and all of its lines
	Save(ctx context.Context, cart *Cart) error
}
