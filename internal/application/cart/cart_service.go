package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/infrastructure/logger"
	"github.com/parcelcart/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CartServiceConfig contains configuration for the cart service
type CartServiceConfig struct {
	Currency         valueobject.Currency
	CurrencySymbol   string
	RequireFormToken bool
}

// CartService handles cart operations for the parcel product
type CartService struct {
	cartRepo cart.CartRepository
	binder   *parcel.Binder
	verifier parcel.FormTokenVerifier
	config   CartServiceConfig
	metrics  *telemetry.ParcelMetrics
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo cart.CartRepository,
	binder *parcel.Binder,
	verifier parcel.FormTokenVerifier,
	config CartServiceConfig,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		binder:   binder,
		verifier: verifier,
		config:   config,
	}
}

// SetParcelMetrics sets the metrics recorder
func (s *CartService) SetParcelMetrics(pm *telemetry.ParcelMetrics) {
	s.metrics = pm
}

// Create opens an empty cart
func (s *CartService) Create(ctx context.Context, req CreateCartRequest) (*CartResponse, error) {
	currency := s.config.Currency
	if strings.TrimSpace(req.Currency) != "" {
		parsed, err := valueobject.ParseCurrency(req.Currency)
		if err != nil {
			return nil, shared.ErrInvalidInput.WithMessage("Invalid currency code")
		}
		currency = parsed
	}

	c, err := cart.NewCart(currency)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Cart created", zap.String("cart_id", c.ID.String()))
	resp := ToCartResponse(c, s.binder, s.config.CurrencySymbol)
	return &resp, nil
}

// Get recalculates the cart totals and returns the cart
func (s *CartService) Get(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "get",
		telemetry.WithAttribute(telemetry.SpanAttrCartID, cartID.String()),
	)
	defer span.End()

	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	changed, err := s.recalculate(ctx, c)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if changed {
		if err := s.cartRepo.Save(ctx, c); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	resp := ToCartResponse(c, s.binder, s.config.CurrencySymbol)
	return &resp, nil
}

// AddItem runs the line creation hook. Only the parcel product is accepted;
// every accepted submission becomes a line of its own.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest) (*AddItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add_item",
		telemetry.WithAttribute(telemetry.SpanAttrCartID, cartID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrProductID, req.ProductID),
	)
	defer span.End()

	if req.ProductID != s.binder.ProductID() {
		return nil, s.reject(ctx, span, parcel.ErrProductNotSupported)
	}
	if err := s.checkFormToken(ctx, req.FormToken); err != nil {
		return nil, s.reject(ctx, span, err)
	}

	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	key, err := s.binder.AttachToNewLine(c, req.RawFields())
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, s.reject(ctx, span, err)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	line, _ := c.GetLine(key)
	fragile := line.Data.IsParcel() && line.Data.Parcel.Fragile
	s.metrics.RecordCartLineCreated(ctx, req.ProductID, fragile)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrLineKey, key,
		telemetry.SpanAttrUnitPrice, line.UnitPrice.String(),
	)
	telemetry.SetOK(span)
	logger.L(ctx).Info("Parcel line added",
		zap.String("cart_id", cartID.String()),
		zap.String("line_key", key),
	)

	return &AddItemResponse{
		LineKey: key,
		Cart:    ToCartResponse(c, s.binder, s.config.CurrencySymbol),
	}, nil
}

// RemoveLine abandons a cart line
func (s *CartService) RemoveLine(ctx context.Context, cartID uuid.UUID, key string) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveLine(key); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCartResponse(c, s.binder, s.config.CurrencySymbol)
	return &resp, nil
}

// checkFormToken verifies the add-to-cart token. A token that was sent is
// always checked; a missing one is only refused when tokens are required.
func (s *CartService) checkFormToken(ctx context.Context, token string) error {
	if token == "" {
		if s.config.RequireFormToken {
			return parcel.ErrStaleForm
		}
		return nil
	}
	if s.verifier == nil {
		return parcel.ErrStaleForm
	}
	if err := s.verifier.Verify(token, auth.ActionAddToCart); err != nil {
		logger.L(ctx).Debug("Add-to-cart form token rejected", zap.Error(err))
		return parcel.ErrStaleForm
	}
	return nil
}

func (s *CartService) recalculate(ctx context.Context, c *cart.Cart) (bool, error) {
	return recalculateCart(ctx, s.binder, s.metrics, c)
}

func (s *CartService) reject(ctx context.Context, span trace.Span, err error) error {
	telemetry.RecordError(span, err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		telemetry.SetAttribute(span, telemetry.SpanAttrErrorCode, domainErr.Code)
		s.metrics.RecordRejection(ctx, "add_to_cart", domainErr.Code)
		logger.L(ctx).Info("Parcel submission rejected", zap.String("code", domainErr.Code))
	}
	return err
}

// recalculateCart runs the totals hook and reports whether any unit price moved
func recalculateCart(ctx context.Context, binder *parcel.Binder, pm *telemetry.ParcelMetrics, c *cart.Cart) (bool, error) {
	before := make(map[string]decimal.Decimal, len(c.Lines))
	for _, l := range c.Lines {
		before[l.Key] = l.UnitPrice
	}

	if err := binder.RecalculateTotals(c); err != nil {
		return false, err
	}
	pm.RecordRecalculation(ctx, len(c.ParcelLines()))

	for _, l := range c.Lines {
		if !l.UnitPrice.Equal(before[l.Key]) {
			return true, nil
		}
	}
	return false, nil
}
