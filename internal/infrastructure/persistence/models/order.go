package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	CartID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	IdempotencyKey *string          `gorm:"type:varchar(128);uniqueIndex"`
	Currency       string           `gorm:"type:varchar(3);not null"`
	Status         order.Status     `gorm:"type:varchar(20);not null"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PlacedAt       *time.Time       `gorm:"index"`
	Lines          []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel is the persistence model for an order line
type OrderLineModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Position  int               `gorm:"not null"`
	ProductID string            `gorm:"type:varchar(64);not null"`
	Quantity  int               `gorm:"not null"`
	UnitPrice decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Meta      []parcel.MetaPair `gorm:"type:text;serializer:json"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CartID:            m.CartID,
		Currency:          valueobject.Currency(m.Currency),
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		PlacedAt:          m.PlacedAt,
		Lines:             make([]*order.Line, len(m.Lines)),
	}
	if m.IdempotencyKey != nil {
		o.IdempotencyKey = *m.IdempotencyKey
	}
	for i, l := range m.Lines {
		o.Lines[i] = order.RestoreLine(l.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Amount, l.Meta)
	}
	return o
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.CartID = o.CartID
	m.IdempotencyKey = nil
	if o.IdempotencyKey != "" {
		key := o.IdempotencyKey
		m.IdempotencyKey = &key
	}
	m.Currency = string(o.Currency)
	m.Status = o.Status
	m.TotalAmount = o.TotalAmount
	m.PlacedAt = o.PlacedAt
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i, l := range o.Lines {
		m.Lines[i] = OrderLineModel{
			ID:        l.ID,
			OrderID:   o.ID,
			Position:  i,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Amount:    l.Amount,
			Meta:      l.Meta(),
		}
	}
}
