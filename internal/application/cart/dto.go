package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/shopspring/decimal"
)

// CreateCartRequest represents a request to open a cart
type CreateCartRequest struct {
	Currency string `json:"currency" binding:"omitempty,currency"`
}

// AddItemRequest is a cart line submission. The parcel fields stay raw
// strings; fragile is a presence flag.
type AddItemRequest struct {
	ProductID   string `json:"product_id" form:"product_id" binding:"required"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	LengthCm    string `json:"length_cm" form:"length_cm"`
	WidthCm     string `json:"width_cm" form:"width_cm"`
	HeightCm    string `json:"height_cm" form:"height_cm"`
	WeightKg    string `json:"weight_kg" form:"weight_kg"`
	Units       string `json:"units" form:"units"`
	Fragile     string `json:"fragile" form:"fragile"`
	FormToken   string `json:"form_token" form:"form_token"`
}

// RawFields converts the request into boundary fields
func (r AddItemRequest) RawFields() parcel.RawFields {
	return parcel.RawFields{
		parcel.FieldCategory:    r.Category,
		parcel.FieldDescription: r.Description,
		parcel.FieldLengthCm:    r.LengthCm,
		parcel.FieldWidthCm:     r.WidthCm,
		parcel.FieldHeightCm:    r.HeightCm,
		parcel.FieldWeightKg:    r.WeightKg,
		parcel.FieldUnits:       r.Units,
		parcel.FieldFragile:     r.Fragile,
	}
}

// CartLineResponse represents a cart line in API responses
type CartLineResponse struct {
	Key          string            `json:"key"`
	ProductID    string            `json:"product_id"`
	Quantity     int               `json:"quantity"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	LineTotal    decimal.Decimal   `json:"line_total"`
	ParcelLineID string            `json:"parcel_line_id,omitempty"`
	Summary      []parcel.MetaPair `json:"summary,omitempty"`
	AddedAt      time.Time         `json:"added_at"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID             uuid.UUID          `json:"id"`
	Currency       string             `json:"currency"`
	Lines          []CartLineResponse `json:"lines"`
	LineCount      int                `json:"line_count"`
	Total          decimal.Decimal    `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
	Version        int                `json:"version"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// AddItemResponse is returned when a line was created
type AddItemResponse struct {
	LineKey string       `json:"line_key"`
	Cart    CartResponse `json:"cart"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID        uuid.UUID         `json:"id"`
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Amount    decimal.Decimal   `json:"amount"`
	Meta      []parcel.MetaPair `json:"meta,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	CartID         uuid.UUID           `json:"cart_id"`
	Status         string              `json:"status"`
	Currency       string              `json:"currency"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	FormattedTotal string              `json:"formatted_total"`
	Lines          []OrderLineResponse `json:"lines"`
	PlacedAt       *time.Time          `json:"placed_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToCartResponse converts a cart to its response. Parcel lines carry their
// display summary.
func ToCartResponse(c *cart.Cart, binder *parcel.Binder, symbol string) CartResponse {
	lines := make([]CartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CartLineResponse{
			Key:       l.Key,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
			AddedAt:   l.AddedAt,
		}
		if l.Data.IsParcel() {
			lines[i].ParcelLineID = l.Data.Discriminator
			lines[i].Summary = binder.PresentLineSummary(*l.Data.Parcel)
		}
	}

	total := c.Total()
	return CartResponse{
		ID:             c.ID,
		Currency:       string(c.Currency),
		Lines:          lines,
		LineCount:      len(lines),
		Total:          total.Amount(),
		FormattedTotal: total.Display(symbol),
		Version:        c.Version,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToOrderResponse converts an order to its response
func ToOrderResponse(o *order.Order, symbol string) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Amount:    l.Amount,
			Meta:      l.Meta(),
		}
	}

	return OrderResponse{
		ID:             o.ID,
		CartID:         o.CartID,
		Status:         o.Status.String(),
		Currency:       string(o.Currency),
		TotalAmount:    o.TotalAmount,
		FormattedTotal: o.GetTotalAmountMoney().Display(symbol),
		Lines:          lines,
		PlacedAt:       o.PlacedAt,
		CreatedAt:      o.CreatedAt,
	}
}
