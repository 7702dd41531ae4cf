package parcel

import (
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/infrastructure/auth"
	"github.com/shopspring/decimal"
)

// QuoteRequest carries the raw measurements of a quote request. Every field
// is a string so malformed input reaches the numeric normaliser untouched.
type QuoteRequest struct {
	LengthCm  string `json:"length_cm" form:"length_cm"`
	WidthCm   string `json:"width_cm" form:"width_cm"`
	HeightCm  string `json:"height_cm" form:"height_cm"`
	WeightKg  string `json:"weight_kg" form:"weight_kg"`
	FormToken string `json:"form_token" form:"form_token"`
}

// RawFields converts the request into boundary fields
func (r QuoteRequest) RawFields() parcel.RawFields {
	return parcel.RawFields{
		parcel.FieldLengthCm: r.LengthCm,
		parcel.FieldWidthCm:  r.WidthCm,
		parcel.FieldHeightCm: r.HeightCm,
		parcel.FieldWeightKg: r.WeightKg,
	}
}

// QuoteResponse is a priced quote
type QuoteResponse struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	FormattedPrice string          `json:"formatted_price"`
	VolumeM3       float64         `json:"volume_m3"`
	Currency       string          `json:"currency"`
}

// TierResponse is one row of the tier table
type TierResponse struct {
	Index          int             `json:"index"`
	MaxWeightKg    float64         `json:"max_weight_kg"`
	MaxVolumeM3    float64         `json:"max_volume_m3"`
	BasePrice      decimal.Decimal `json:"base_price"`
	FormattedPrice string          `json:"formatted_price"`
}

// TierTableResponse lists the configured tiers in precedence order
type TierTableResponse struct {
	ProductID      string         `json:"product_id"`
	Currency       string         `json:"currency"`
	CurrencySymbol string         `json:"currency_symbol"`
	Tiers          []TierResponse `json:"tiers"`
}

// FormTokensResponse holds one token per parcel form action
type FormTokensResponse struct {
	Quote     auth.IssuedToken `json:"quote"`
	AddToCart auth.IssuedToken `json:"add_to_cart"`
}
