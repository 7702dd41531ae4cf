package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCheckoutTransactor_Commit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	c, err := cart.NewCart("EUR")
	require.NoError(t, err)
	_, err = newTestBinder().AttachToNewLine(c, testParcelFields())
	require.NoError(t, err)
	require.NoError(t, NewGormCartRepository(db).Save(ctx, c))

	o := newPlacedOrder(t, "key-commit")
	err = NewGormCheckoutTransactor(db).WithinTransaction(ctx,
		func(ctx context.Context, carts cart.CartRepository, orders order.OrderRepository) error {
			if err := orders.Create(ctx, o); err != nil {
				return err
			}
			c.Clear()
			return carts.Save(ctx, c)
		})
	require.NoError(t, err)

	stored, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, stored.ID)

	reloaded, err := NewGormCartRepository(db).FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestGormCheckoutTransactor_Rollback(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	o := newPlacedOrder(t, "key-rollback")
	err := NewGormCheckoutTransactor(db).WithinTransaction(ctx,
		func(ctx context.Context, _ cart.CartRepository, orders order.OrderRepository) error {
			if err := orders.Create(ctx, o); err != nil {
				return err
			}
			return boom
		})
	assert.ErrorIs(t, err, boom)

	_, err = NewGormOrderRepository(db).FindByIdempotencyKey(ctx, "key-rollback")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
