package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the status of an order
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPlaced  Status = "PLACED"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ErrSealed is returned when a placed order or its lines are modified
var ErrSealed = shared.ErrInvalidState.WithMessage("Order has been placed and can no longer be modified")

// Line is an order row. Its metadata is written once while the order is
// pending and is frozen when the order is placed.
type Line struct {
	ID        uuid.UUID
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
	meta      []parcel.MetaPair
	sealed    bool
}

// AddMeta appends a metadata pair. It fails once the order is placed.
func (l *Line) AddMeta(label, value string) error {
	if l.sealed {
		return ErrSealed
	}
	l.meta = append(l.meta, parcel.MetaPair{Label: label, Value: value})
	return nil
}

// Meta returns a copy of the line metadata
func (l *Line) Meta() []parcel.MetaPair {
	out := make([]parcel.MetaPair, len(l.meta))
	copy(out, l.meta)
	return out
}

// RestoreLine rebuilds a placed order line from storage
func RestoreLine(id uuid.UUID, productID string, quantity int, unitPrice, amount decimal.Decimal, meta []parcel.MetaPair) *Line {
	l := &Line{
		ID:        id,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    amount,
		sealed:    true,
	}
	l.meta = append(l.meta, meta...)
	return l
}

// Order is the order aggregate root created from a cart at checkout
type Order struct {
	shared.BaseAggregateRoot
	CartID         uuid.UUID
	IdempotencyKey string
	Currency       valueobject.Currency
	Status         Status
	Lines          []*Line
	TotalAmount    decimal.Decimal
	PlacedAt       *time.Time
}

// NewOrder creates a pending order for a cart
func NewOrder(cartID uuid.UUID, currency valueobject.Currency) (*Order, error) {
	if cartID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CART", "Cart ID cannot be empty")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CartID:            cartID,
		Currency:          currency,
		Status:            StatusPending,
		Lines:             make([]*Line, 0),
		TotalAmount:       decimal.Zero,
	}, nil
}

// AddLine adds a line copied from a cart row
func (o *Order) AddLine(productID string, quantity int, unitPrice decimal.Decimal) (*Line, error) {
	if o.Status != StatusPending {
		return nil, ErrSealed
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	line := &Line{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	o.Lines = append(o.Lines, line)
	o.recalculateTotals()
	o.Touch()
	return line, nil
}

// Place finalises the order and seals every line's metadata
func (o *Order) Place() error {
	if o.Status != StatusPending {
		return shared.ErrInvalidState.WithMessage(fmt.Sprintf("Cannot place order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.ErrInvalidState.WithMessage("Cannot place an order without lines")
	}

	for _, l := range o.Lines {
		l.sealed = true
	}
	o.recalculateTotals()

	now := time.Now()
	o.Status = StatusPlaced
	o.PlacedAt = &now
	o.UpdatedAt = now
	return nil
}

// IsPlaced reports whether the order has been finalised
func (o *Order) IsPlaced() bool {
	return o.Status == StatusPlaced
}

// GetTotalAmountMoney returns total amount as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalAmount, o.Currency)
	return m
}

func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Amount)
	}
	o.TotalAmount = total
}
