package parcel

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is a single shipping price rule. A parcel qualifies only when it is
// within both the weight and the volume bound.
type Tier struct {
	MaxWeightKg float64         `json:"max_weight_kg"`
	MaxVolumeM3 float64         `json:"max_volume_m3"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// Fits reports whether a parcel of the given weight and volume qualifies
func (t Tier) Fits(weightKg, volumeM3 float64) bool {
	return weightKg <= t.MaxWeightKg && volumeM3 <= t.MaxVolumeM3
}

// TierTable is an immutable, ordered list of tiers. Table order is lookup
// precedence and is never re-sorted.
type TierTable struct {
	tiers []Tier
}

// ErrEmptyTierTable is returned when a table has no tiers
var ErrEmptyTierTable = errors.New("tier table must contain at least one tier")

// NewTierTable validates and copies the given tiers
func NewTierTable(tiers []Tier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, ErrEmptyTierTable
	}
	copied := make([]Tier, len(tiers))
	for i, t := range tiers {
		if t.MaxWeightKg <= 0 {
			return TierTable{}, fmt.Errorf("tier %d: max_weight_kg must be positive", i+1)
		}
		if t.MaxVolumeM3 <= 0 {
			return TierTable{}, fmt.Errorf("tier %d: max_volume_m3 must be positive", i+1)
		}
		if t.BasePrice.IsNegative() {
			return TierTable{}, fmt.Errorf("tier %d: base_price cannot be negative", i+1)
		}
		copied[i] = t
	}
	return TierTable{tiers: copied}, nil
}

// DefaultTierTable returns the standard seven-tier table
func DefaultTierTable() TierTable {
	return TierTable{tiers: []Tier{
		{MaxWeightKg: 5, MaxVolumeM3: 0.03, BasePrice: decimal.NewFromInt(31)},
		{MaxWeightKg: 10, MaxVolumeM3: 0.04, BasePrice: decimal.NewFromInt(34)},
		{MaxWeightKg: 15, MaxVolumeM3: 0.07, BasePrice: decimal.NewFromInt(38)},
		{MaxWeightKg: 20, MaxVolumeM3: 0.10, BasePrice: decimal.NewFromInt(43)},
		{MaxWeightKg: 25, MaxVolumeM3: 0.13, BasePrice: decimal.NewFromInt(53)},
		{MaxWeightKg: 30, MaxVolumeM3: 0.15, BasePrice: decimal.NewFromInt(59)},
		{MaxWeightKg: 35, MaxVolumeM3: 0.20, BasePrice: decimal.NewFromInt(67)},
	}}
}

// Tiers returns a copy of the tiers in table order
func (t TierTable) Tiers() []Tier {
	result := make([]Tier, len(t.tiers))
	copy(result, t.tiers)
	return result
}

// Len returns the number of tiers
func (t TierTable) Len() int {
	return len(t.tiers)
}
