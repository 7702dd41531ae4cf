package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CartModel is the persistence model for the Cart aggregate root.
type CartModel struct {
	AggregateModel
	Currency string          `gorm:"type:varchar(3);not null"`
	Lines    []CartLineModel `gorm:"foreignKey:CartID;references:ID"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// CartLineModel is the persistence model for a cart line. The parcel record
// is stored as JSON next to the line it belongs to.
type CartLineModel struct {
	CartID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LineKey       string          `gorm:"type:varchar(64);primaryKey"`
	Position      int             `gorm:"not null"`
	ProductID     string          `gorm:"type:varchar(64);not null"`
	Quantity      int             `gorm:"not null;default:1"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Parcel        *parcel.Record  `gorm:"type:text;serializer:json"`
	Discriminator string          `gorm:"type:varchar(64)"`
	AddedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// ToDomain converts the persistence model to a domain Cart.
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Currency:          valueobject.Currency(m.Currency),
		Lines:             make([]cart.Line, len(m.Lines)),
	}
	for i, l := range m.Lines {
		c.Lines[i] = cart.Line{
			Key:       l.LineKey,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Data: parcel.LineData{
				Parcel:        l.Parcel,
				Discriminator: l.Discriminator,
			},
			AddedAt: l.AddedAt,
		}
	}
	return c
}

// FromDomain populates the persistence model from a domain Cart.
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Currency = string(c.Currency)
	m.Lines = make([]CartLineModel, len(c.Lines))
	for i, l := range c.Lines {
		m.Lines[i] = CartLineModel{
			CartID:        c.ID,
			LineKey:       l.Key,
			Position:      i,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Parcel:        l.Data.Parcel,
			Discriminator: l.Data.Discriminator,
			AddedAt:       l.AddedAt,
		}
	}
}
