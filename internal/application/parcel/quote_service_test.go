package parcel

import (
	"context"
	"testing"
	"time"

	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/parcelcart/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestQuoteService(secret string) *QuoteService {
	binder := parcel.NewBinder(parcel.NewPricingEngine(parcel.DefaultTierTable()), "2898")
	tokens := auth.NewFormTokenService(config.ParcelConfig{
		FormTokenSecret: secret,
		FormTokenTTL:    time.Hour,
	})
	return NewQuoteService(binder, tokens, QuoteServiceConfig{
		Currency:       "EUR",
		CurrencySymbol: "€",
	})
}

func TestQuoteService_Quote(t *testing.T) {
	svc := newTestQuoteService(testSecret)

	t.Run("first fitting tier", func(t *testing.T) {
		resp, err := svc.Quote(context.Background(), QuoteRequest{
			LengthCm: "20", WidthCm: "20", HeightCm: "50", WeightKg: "4",
		})
		require.NoError(t, err)
		assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(31)))
		assert.Equal(t, "€31.00", resp.FormattedPrice)
		assert.InDelta(t, 0.02, resp.VolumeM3, 1e-9)
		assert.Equal(t, "EUR", resp.Currency)
	})

	t.Run("comma decimal separator", func(t *testing.T) {
		resp, err := svc.Quote(context.Background(), QuoteRequest{
			LengthCm: "50", WidthCm: "20", HeightCm: "50", WeightKg: "12,5",
		})
		require.NoError(t, err)
		assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(38)))
	})

	t.Run("unparseable number is rejected", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), QuoteRequest{
			LengthCm: "abc", WidthCm: "20", HeightCm: "20", WeightKg: "1",
		})
		assert.ErrorIs(t, err, parcel.ErrInvalidDimensions)
	})

	t.Run("too heavy", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), QuoteRequest{
			LengthCm: "10", WidthCm: "10", HeightCm: "10", WeightKg: "40",
		})
		assert.ErrorIs(t, err, parcel.ErrOutOfBounds)
	})
}

func TestQuoteService_QuoteFormToken(t *testing.T) {
	svc := newTestQuoteService(testSecret)
	req := QuoteRequest{LengthCm: "10", WidthCm: "10", HeightCm: "10", WeightKg: "1"}

	tokens, err := svc.IssueFormTokens(context.Background())
	require.NoError(t, err)

	req.FormToken = tokens.Quote.Token
	_, err = svc.Quote(context.Background(), req)
	assert.NoError(t, err)

	req.FormToken = tokens.AddToCart.Token
	_, err = svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, parcel.ErrSecurityCheckFailed)

	req.FormToken = "forged"
	_, err = svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, parcel.ErrSecurityCheckFailed)
}

func TestQuoteService_Tiers(t *testing.T) {
	svc := newTestQuoteService(testSecret)

	resp := svc.Tiers()
	assert.Equal(t, "2898", resp.ProductID)
	assert.Equal(t, "EUR", resp.Currency)
	require.Len(t, resp.Tiers, 7)
	assert.Equal(t, 1, resp.Tiers[0].Index)
	assert.Equal(t, "€31.00", resp.Tiers[0].FormattedPrice)
	assert.Equal(t, 35.0, resp.Tiers[6].MaxWeightKg)
	assert.Equal(t, "€67.00", resp.Tiers[6].FormattedPrice)
}

func TestQuoteService_IssueFormTokens(t *testing.T) {
	t.Run("one token per action", func(t *testing.T) {
		svc := newTestQuoteService(testSecret)
		resp, err := svc.IssueFormTokens(context.Background())
		require.NoError(t, err)
		assert.Equal(t, auth.ActionQuote, resp.Quote.Action)
		assert.Equal(t, auth.ActionAddToCart, resp.AddToCart.Action)
		assert.NotEqual(t, resp.Quote.Token, resp.AddToCart.Token)
	})

	t.Run("no secret configured", func(t *testing.T) {
		svc := newTestQuoteService("")
		_, err := svc.IssueFormTokens(context.Background())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
