package parcel

import "github.com/shopspring/decimal"

// LineData is the parcel payload attached to a cart line. Discriminator is a
// fresh opaque value per submission, so two identical parcels never share a
// line identity.
type LineData struct {
	Parcel        *Record `json:"parcel,omitempty"`
	Discriminator string  `json:"parcel_line_id,omitempty"`
}

// IsParcel reports whether the line data carries a parcel record
func (d LineData) IsParcel() bool {
	return d.Parcel != nil
}

// BoundLine is a cart line carrying a parcel record
type BoundLine struct {
	Key    string
	Record Record
}

// CartHost is the cart the binder attaches parcels to and reprices
type CartHost interface {
	AddLine(productID string, data LineData) (key string, err error)
	ParcelLines() []BoundLine
	SetLineUnitPrice(key string, price decimal.Decimal) error
}

// OrderLineMetaWriter receives the metadata written onto an order line at finalisation
type OrderLineMetaWriter interface {
	AddMeta(label, value string) error
}

// FormTokenVerifier checks an anti-forgery token for a given action
type FormTokenVerifier interface {
	Verify(token, action string) error
}
