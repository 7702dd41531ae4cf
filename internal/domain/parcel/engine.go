package parcel

import (
	"github.com/shopspring/decimal"
)

// PricingEngine maps a parcel's weight and volume to a tier price.
// It holds no mutable state; the same inputs always give the same price.
type PricingEngine struct {
	tiers TierTable
}

// NewPricingEngine creates a pricing engine over the given tier table
func NewPricingEngine(tiers TierTable) *PricingEngine {
	return &PricingEngine{tiers: tiers}
}

// Tiers returns the engine's tier table
func (e *PricingEngine) Tiers() TierTable {
	return e.tiers
}

// VolumeM3 converts centimetre dimensions to cubic metres, clamped at zero
func VolumeM3(lengthCm, widthCm, heightCm float64) float64 {
	v := lengthCm * widthCm * heightCm / 1_000_000
	if v < 0 {
		return 0
	}
	return v
}

// Quote returns the base price of the first tier, in table order, that the
// parcel fits. ok is false when no tier fits; there is no fallback tier.
func (e *PricingEngine) Quote(weightKg, volumeM3 float64) (price decimal.Decimal, ok bool) {
	for _, t := range e.tiers.tiers {
		if t.Fits(weightKg, volumeM3) {
			return t.BasePrice, true
		}
	}
	return decimal.Zero, false
}
