package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency is an upper-case ISO 4217 code.
type Currency string

// DefaultCurrency prices parcels when no currency is configured.
const DefaultCurrency Currency = "EUR"

// ParseCurrency canonicalises code, rejecting anything that is not ISO 4217.
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	return Currency(unit.String()), nil
}

// scale is the number of minor-unit digits for c, two when c is unknown.
func (c Currency) scale() int32 {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return 2
	}
	s, _ := currency.Standard.Rounding(unit)
	return int32(s)
}

// Money is an immutable amount in one currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney pairs amount with cur. The currency is required.
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: cur}, nil
}

// Zero is the empty amount in cur.
func Zero(cur Currency) Money { return Money{amount: decimal.Zero, currency: cur} }

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Equals compares currency and numeric value, ignoring trailing zeros.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// MinorUnits converts the amount to the currency's smallest unit, rounding
// half away from zero. EUR 67.005 is 6701 cents.
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(m.currency.scale()).Round(0).IntPart()
}

// String renders "38.00 EUR".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}

// Display renders the amount behind a currency symbol, e.g. "€31.00".
// An empty symbol falls back to String.
func (m Money) Display(symbol string) string {
	if symbol == "" {
		return m.String()
	}
	return symbol + m.amount.StringFixed(2)
}
