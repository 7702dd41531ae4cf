package parcel

import (
	"github.com/shopspring/decimal"
)

// Quote is the pricing result for a parcel's measurements
type Quote struct {
	VolumeM3  float64         `json:"volume_m3"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Record is a validated, priced parcel. It always carries a unit price.
type Record struct {
	Input
	Quote
}

// EffectiveLinePrice is the tier price multiplied by the parcel's units.
// It is derived from the stored record every time, so repeated calls never compound.
func (r Record) EffectiveLinePrice() decimal.Decimal {
	units := r.Units
	if units < 1 {
		units = 1
	}
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(units)))
}

// MetaPair is one human-readable label/value pair of line metadata
type MetaPair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metadata labels, in presentation order
const (
	LabelCategory    = "Category"
	LabelDescription = "Description"
	LabelUnits       = "Units"
	LabelFragile     = "Fragile"
	LabelDimensions  = "Dimensions (cm)"
	LabelWeight      = "Weight (kg)"
	LabelVolume      = "Volume (m³)"
	LabelTierPrice   = "Tier price"
)
