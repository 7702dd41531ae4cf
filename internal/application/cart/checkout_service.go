package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/infrastructure/logger"
	"github.com/parcelcart/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrEmptyCart is returned when checking out a cart without lines
var ErrEmptyCart = shared.ErrInvalidState.WithMessage("Cannot check out an empty cart")

// CheckoutTransactor runs the checkout writes atomically
type CheckoutTransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, carts cart.CartRepository, orders order.OrderRepository) error) error
}

// CheckoutServiceConfig contains configuration for the checkout service
type CheckoutServiceConfig struct {
	CurrencySymbol string
	IdempotencyTTL time.Duration
}

// CheckoutService turns carts into placed orders
type CheckoutService struct {
	orderRepo   order.OrderRepository
	transactor  CheckoutTransactor
	binder      *parcel.Binder
	idempotency shared.IdempotencyStore
	config      CheckoutServiceConfig
	metrics     *telemetry.ParcelMetrics
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo order.OrderRepository,
	transactor CheckoutTransactor,
	binder *parcel.Binder,
	idempotency shared.IdempotencyStore,
	config CheckoutServiceConfig,
) *CheckoutService {
	if config.IdempotencyTTL <= 0 {
		config.IdempotencyTTL = 24 * time.Hour
	}
	return &CheckoutService{
		orderRepo:   orderRepo,
		transactor:  transactor,
		binder:      binder,
		idempotency: idempotency,
		config:      config,
	}
}

// SetParcelMetrics sets the metrics recorder
func (s *CheckoutService) SetParcelMetrics(pm *telemetry.ParcelMetrics) {
	s.metrics = pm
}

// Checkout finalises a cart: totals are recalculated, an order is built from
// the lines with their parcel metadata, the order is placed and stored and the
// cart is cleared. A non-empty idempotency key can be used only once.
func (s *CheckoutService) Checkout(ctx context.Context, cartID uuid.UUID, idempotencyKey string) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place",
		telemetry.WithAttribute(telemetry.SpanAttrCartID, cartID.String()),
	)
	defer span.End()

	if idempotencyKey != "" {
		telemetry.SetAttribute(span, telemetry.SpanAttrIdempotency, idempotencyKey)

		claimed, claimErr := s.idempotency.Claim(ctx, idempotencyKey, s.config.IdempotencyTTL)
		if claimErr != nil {
			telemetry.RecordError(span, claimErr)
			return nil, claimErr
		}
		if !claimed {
			logger.L(ctx).Info("Duplicate checkout request", zap.String("idempotency_key", idempotencyKey))
			return nil, shared.ErrDuplicateRequest
		}
		defer func() {
			if err == nil {
				return
			}
			if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), idempotencyKey); releaseErr != nil {
				logger.L(ctx).Warn("Failed to release idempotency key",
					zap.String("idempotency_key", idempotencyKey),
					zap.Error(releaseErr),
				)
			}
		}()
	}

	var placed *order.Order
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, carts cart.CartRepository, orders order.OrderRepository) error {
		c, err := carts.FindByID(ctx, cartID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		if _, err := recalculateCart(ctx, s.binder, s.metrics, c); err != nil {
			return err
		}

		o, err := s.buildOrder(c, idempotencyKey)
		if err != nil {
			return err
		}
		if err := orders.Create(ctx, o); err != nil {
			return err
		}

		c.Clear()
		if err := carts.Save(ctx, c); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordOrderCommitted(ctx, placed.GetTotalAmountMoney())
	telemetry.SetAttribute(span, telemetry.SpanAttrOrderID, placed.ID.String())
	telemetry.SetOK(span)
	logger.L(ctx).Info("Order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("cart_id", cartID.String()),
		zap.String("total", placed.TotalAmount.StringFixed(2)),
	)

	out := ToOrderResponse(placed, s.config.CurrencySymbol)
	return &out, nil
}

// buildOrder copies every cart line onto a new order and freezes the parcel
// metadata through the finalisation hook
func (s *CheckoutService) buildOrder(c *cart.Cart, idempotencyKey string) (*order.Order, error) {
	o, err := order.NewOrder(c.ID, c.Currency)
	if err != nil {
		return nil, err
	}
	o.IdempotencyKey = idempotencyKey

	for _, l := range c.Lines {
		line, err := o.AddLine(l.ProductID, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		if l.Data.IsParcel() {
			if err := s.binder.CommitToOrderLine(*l.Data.Parcel, line); err != nil {
				return nil, err
			}
		}
	}

	if err := o.Place(); err != nil {
		return nil, err
	}
	return o, nil
}

// GetOrder retrieves a placed order
func (s *CheckoutService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o, s.config.CurrencySymbol)
	return &resp, nil
}
