package parcel

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Binder validates and prices parcel submissions and manages the priced
// record's life on a cart line and, at checkout, an order line.
//
// A submission moves Draft → Validated → Priced → Bound → Committed. Each step
// only moves forward; a rejected draft never produces a Record.
type Binder struct {
	engine           *PricingEngine
	productID        string
	newDiscriminator func() string
}

// NewBinder creates a binder for the parcel product
func NewBinder(engine *PricingEngine, productID string) *Binder {
	return &Binder{
		engine:           engine,
		productID:        productID,
		newDiscriminator: uuid.NewString,
	}
}

// ProductID returns the product that receives parcel handling
func (b *Binder) ProductID() string {
	return b.productID
}

// Engine returns the pricing engine used by the binder
func (b *Binder) Engine() *PricingEngine {
	return b.engine
}

// PriceMeasurements validates dimensions and weight and prices them.
// It is the routine shared by the quote endpoint and add-to-cart.
func (b *Binder) PriceMeasurements(in Input) (Quote, error) {
	if !in.HasValidMeasurements() {
		return Quote{}, ErrInvalidDimensions
	}
	volume := in.ComputeVolumeM3()
	price, ok := b.engine.Quote(in.WeightKg, volume)
	if !ok {
		return Quote{}, ErrOutOfBounds
	}
	return Quote{VolumeM3: volume, UnitPrice: price}, nil
}

// ValidateAndPrice turns raw fields into a priced Record. The first failing
// check wins: category, description, measurements, tier lookup.
func (b *Binder) ValidateAndPrice(raw RawFields) (Record, error) {
	in := ParseInput(raw)

	if in.Category == "" {
		return Record{}, ErrCategoryRequired
	}
	if in.Description == "" {
		return Record{}, ErrDescriptionRequired
	}

	q, err := b.PriceMeasurements(in)
	if err != nil {
		return Record{}, err
	}
	return Record{Input: in, Quote: q}, nil
}

// BindLine is the cart line creation hook. For the parcel product it returns
// line data carrying the priced record and a fresh discriminator; other
// products pass through with empty line data.
func (b *Binder) BindLine(productID string, raw RawFields) (LineData, error) {
	if productID != b.productID {
		return LineData{}, nil
	}
	rec, err := b.ValidateAndPrice(raw)
	if err != nil {
		return LineData{}, err
	}
	return LineData{
		Parcel:        &rec,
		Discriminator: b.newDiscriminator(),
	}, nil
}

// AttachToNewLine binds a submission and adds it to the cart as its own line
func (b *Binder) AttachToNewLine(host CartHost, raw RawFields) (string, error) {
	data, err := b.BindLine(b.productID, raw)
	if err != nil {
		return "", err
	}
	return host.AddLine(b.productID, data)
}

// RecalculateTotals is the totals hook: every parcel line's unit price is set
// to its effective line price, computed from the stored record.
func (b *Binder) RecalculateTotals(host CartHost) error {
	for _, line := range host.ParcelLines() {
		if err := host.SetLineUnitPrice(line.Key, line.Record.EffectiveLinePrice()); err != nil {
			return fmt.Errorf("reprice line %s: %w", line.Key, err)
		}
	}
	return nil
}

// PresentLineSummary returns the display pairs for a cart line. It does not
// modify the record and is safe to call any number of times.
func (b *Binder) PresentLineSummary(rec Record) []MetaPair {
	return metaPairs(rec)
}

// ProjectToOrderLine returns the metadata pairs to be frozen onto an order line
func (b *Binder) ProjectToOrderLine(rec Record) []MetaPair {
	return metaPairs(rec)
}

// CommitToOrderLine is the order finalisation hook: it writes the projected
// pairs onto the order line once.
func (b *Binder) CommitToOrderLine(rec Record, w OrderLineMetaWriter) error {
	for _, p := range b.ProjectToOrderLine(rec) {
		if err := w.AddMeta(p.Label, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func metaPairs(rec Record) []MetaPair {
	return []MetaPair{
		{Label: LabelCategory, Value: rec.Category},
		{Label: LabelDescription, Value: rec.Description},
		{Label: LabelUnits, Value: fmt.Sprintf("%d", rec.Units)},
		{Label: LabelFragile, Value: yesNo(rec.Fragile)},
		{Label: LabelDimensions, Value: formatPlain(rec.LengthCm) + " × " + formatPlain(rec.WidthCm) + " × " + formatPlain(rec.HeightCm)},
		{Label: LabelWeight, Value: formatPlain(rec.WeightKg)},
		{Label: LabelVolume, Value: formatFixed(decimal.NewFromFloat(rec.VolumeM3), 3)},
		{Label: LabelTierPrice, Value: formatFixed(rec.UnitPrice, 2)},
	}
}
