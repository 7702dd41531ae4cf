package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrLineNotFound is returned when a line key is not in the cart
var ErrLineNotFound = shared.NewDomainError("NOT_FOUND", "Cart line not found")

// Line is a cart row. Identical product and line data share one row whose
// quantity grows; parcel lines always differ by their discriminator.
type Line struct {
	Key       string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Data      parcel.LineData
	AddedAt   time.Time
}

// LineTotal returns unit price × quantity
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the shopping cart aggregate root
type Cart struct {
	shared.BaseAggregateRoot
	Currency valueobject.Currency
	Lines    []Line
}

// NewCart creates an empty cart
func NewCart(currency valueobject.Currency) (*Cart, error) {
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Currency:          currency,
		Lines:             make([]Line, 0),
	}, nil
}

// LineKey derives a line identity from the product and its line data
func LineKey(productID string, data parcel.LineData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode line data: %w", err)
	}
	sum := sha256.New()
	sum.Write([]byte(productID))
	sum.Write([]byte{0})
	sum.Write(payload)
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// AddLine adds a product to the cart. An existing line with the same key has
// its quantity increased instead.
func (c *Cart) AddLine(productID string, data parcel.LineData) (string, error) {
	if productID == "" {
		return "", shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	key, err := LineKey(productID, data)
	if err != nil {
		return "", err
	}

	if line := c.findLine(key); line != nil {
		line.Quantity++
		c.Touch()
		return key, nil
	}

	unitPrice := decimal.Zero
	if data.IsParcel() {
		unitPrice = data.Parcel.EffectiveLinePrice()
	}
	c.Lines = append(c.Lines, Line{
		Key:       key,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: unitPrice,
		Data:      data,
		AddedAt:   time.Now(),
	})
	c.Touch()
	return key, nil
}

// ParcelLines returns the lines that carry a parcel record, in cart order
func (c *Cart) ParcelLines() []parcel.BoundLine {
	out := make([]parcel.BoundLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.Data.IsParcel() {
			out = append(out, parcel.BoundLine{Key: l.Key, Record: *l.Data.Parcel})
		}
	}
	return out
}

// SetLineUnitPrice sets the unit price of a line
func (c *Cart) SetLineUnitPrice(key string, price decimal.Decimal) error {
	line := c.findLine(key)
	if line == nil {
		return ErrLineNotFound
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	line.UnitPrice = price
	return nil
}

// RemoveLine drops a line from the cart
func (c *Cart) RemoveLine(key string) error {
	for idx, l := range c.Lines {
		if l.Key == key {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.Touch()
			return nil
		}
	}
	return ErrLineNotFound
}

// GetLine returns a copy of the line with the given key
func (c *Cart) GetLine(key string) (Line, bool) {
	if line := c.findLine(key); line != nil {
		return *line, true
	}
	return Line{}, false
}

// Total returns the sum of all line totals
func (c *Cart) Total() valueobject.Money {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	m, _ := valueobject.NewMoney(total, c.Currency)
	return m
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Lines = make([]Line, 0)
	c.Touch()
}

func (c *Cart) findLine(key string) *Line {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return &c.Lines[i]
		}
	}
	return nil
}
