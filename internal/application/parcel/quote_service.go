package parcel

import (
	"context"
	"errors"
	"time"

	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/infrastructure/logger"
	"github.com/parcelcart/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// QuoteServiceConfig contains the presentation settings of the quote service
type QuoteServiceConfig struct {
	Currency       valueobject.Currency
	CurrencySymbol string
}

// QuoteService prices parcels for the quote form and issues form tokens
type QuoteService struct {
	binder  *parcel.Binder
	tokens  *auth.FormTokenService
	config  QuoteServiceConfig
	metrics *telemetry.ParcelMetrics
	now     func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(binder *parcel.Binder, tokens *auth.FormTokenService, config QuoteServiceConfig) *QuoteService {
	return &QuoteService{
		binder: binder,
		tokens: tokens,
		config: config,
		now:    time.Now,
	}
}

// SetParcelMetrics sets the metrics recorder
func (s *QuoteService) SetParcelMetrics(pm *telemetry.ParcelMetrics) {
	s.metrics = pm
}

// Quote prices raw measurements. A form token is checked only when the
// caller sent one.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "parcel", "quote")
	defer span.End()

	started := s.now()

	if req.FormToken != "" {
		if err := s.tokens.Verify(req.FormToken, auth.ActionQuote); err != nil {
			logger.L(ctx).Debug("Quote form token rejected", zap.Error(err))
			s.reject(ctx, span, parcel.ErrSecurityCheckFailed, started)
			return nil, parcel.ErrSecurityCheckFailed
		}
	}

	q, err := s.binder.PriceMeasurements(parcel.ParseInput(req.RawFields()))
	if err != nil {
		s.reject(ctx, span, err, started)
		return nil, err
	}

	money, err := valueobject.NewMoney(q.UnitPrice, s.config.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrVolumeM3, q.VolumeM3,
		telemetry.SpanAttrUnitPrice, q.UnitPrice.String(),
	)
	telemetry.SetOK(span)
	s.metrics.RecordQuote(ctx, telemetry.QuoteResultPriced, s.now().Sub(started))

	return &QuoteResponse{
		UnitPrice:      q.UnitPrice,
		FormattedPrice: money.Display(s.config.CurrencySymbol),
		VolumeM3:       q.VolumeM3,
		Currency:       string(s.config.Currency),
	}, nil
}

// Tiers returns the tier table in precedence order
func (s *QuoteService) Tiers() TierTableResponse {
	tiers := s.binder.Engine().Tiers().Tiers()
	resp := TierTableResponse{
		ProductID:      s.binder.ProductID(),
		Currency:       string(s.config.Currency),
		CurrencySymbol: s.config.CurrencySymbol,
		Tiers:          make([]TierResponse, 0, len(tiers)),
	}
	for i, t := range tiers {
		money, _ := valueobject.NewMoney(t.BasePrice, s.config.Currency)
		resp.Tiers = append(resp.Tiers, TierResponse{
			Index:          i + 1,
			MaxWeightKg:    t.MaxWeightKg,
			MaxVolumeM3:    t.MaxVolumeM3,
			BasePrice:      t.BasePrice,
			FormattedPrice: money.Display(s.config.CurrencySymbol),
		})
	}
	return resp
}

// IssueFormTokens signs a token for each parcel form action
func (s *QuoteService) IssueFormTokens(ctx context.Context) (*FormTokensResponse, error) {
	quote, err := s.tokens.Issue(auth.ActionQuote)
	if err != nil {
		return nil, s.tokenIssueError(ctx, err)
	}
	addToCart, err := s.tokens.Issue(auth.ActionAddToCart)
	if err != nil {
		return nil, s.tokenIssueError(ctx, err)
	}
	return &FormTokensResponse{Quote: quote, AddToCart: addToCart}, nil
}

func (s *QuoteService) tokenIssueError(ctx context.Context, err error) error {
	if errors.Is(err, auth.ErrMissingSecret) {
		return shared.ErrInvalidState.WithMessage("Form tokens are not enabled")
	}
	logger.L(ctx).Error("Failed to sign form token", zap.Error(err))
	return err
}

func (s *QuoteService) reject(ctx context.Context, span trace.Span, err error, started time.Time) {
	telemetry.RecordError(span, err)

	code := "UNKNOWN"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrErrorCode, code)

	result := telemetry.QuoteResultRejected
	if code == parcel.CodeOutOfBounds {
		result = telemetry.QuoteResultOutOfRange
	}
	s.metrics.RecordQuote(ctx, result, s.now().Sub(started))
	s.metrics.RecordRejection(ctx, "quote", code)

	logger.L(ctx).Info("Parcel quote rejected", zap.String("code", code))
}
