package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/parcelcart/backend/internal/domain/shared/valueobject"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Quote results used as the "result" attribute.
const (
	QuoteResultPriced     = "priced"
	QuoteResultOutOfRange = "out_of_bounds"
	QuoteResultRejected   = "rejected"
)

// ParcelMetrics counts parcel pricing, cart binding and checkout activity.
// A nil *ParcelMetrics is valid and records nothing.
type ParcelMetrics struct {
	quotes         metric.Int64Counter
	quoteDuration  metric.Float64Histogram
	rejections     metric.Int64Counter
	linesCreated   metric.Int64Counter
	recalculations metric.Int64Counter
	ordersPlaced   metric.Int64Counter
	orderAmount    metric.Int64Counter
}

// NewParcelMetrics registers the parcel instruments on meter.
func NewParcelMetrics(meter metric.Meter) (*ParcelMetrics, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	pm := &ParcelMetrics{}
	var err, e error

	pm.quotes, e = meter.Int64Counter("parcel_quote_total",
		metric.WithDescription("Parcel price quotes by result"),
		metric.WithUnit("{quote}"))
	err = errors.Join(err, e)

	pm.quoteDuration, e = meter.Float64Histogram("parcel_quote_duration_seconds",
		metric.WithDescription("Time spent validating and pricing a parcel"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(QuoteDurationBuckets...))
	err = errors.Join(err, e)

	pm.rejections, e = meter.Int64Counter("parcel_rejection_total",
		metric.WithDescription("Parcel submissions rejected before pricing or binding"),
		metric.WithUnit("{rejection}"))
	err = errors.Join(err, e)

	pm.linesCreated, e = meter.Int64Counter("parcel_cart_line_created_total",
		metric.WithDescription("Cart lines created with an attached parcel"),
		metric.WithUnit("{line}"))
	err = errors.Join(err, e)

	pm.recalculations, e = meter.Int64Counter("parcel_cart_recalculation_total",
		metric.WithDescription("Cart totals recalculation passes"),
		metric.WithUnit("{pass}"))
	err = errors.Join(err, e)

	pm.ordersPlaced, e = meter.Int64Counter("parcel_order_committed_total",
		metric.WithDescription("Orders placed from a cart"),
		metric.WithUnit("{order}"))
	err = errors.Join(err, e)

	pm.orderAmount, e = meter.Int64Counter("parcel_order_amount_total",
		metric.WithDescription("Placed order amount in minor currency units"),
		metric.WithUnit("{minor_unit}"))
	err = errors.Join(err, e)

	if err != nil {
		return nil, err
	}
	return pm, nil
}

// RecordQuote records a quote attempt and how long pricing took.
func (pm *ParcelMetrics) RecordQuote(ctx context.Context, result string, elapsed time.Duration) {
	if pm == nil {
		return
	}
	attrs := metric.WithAttributes(AttrResult.String(result))
	pm.quotes.Add(ctx, 1, attrs)
	pm.quoteDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordRejection records a rejected submission by operation and error code.
func (pm *ParcelMetrics) RecordRejection(ctx context.Context, operation, code string) {
	if pm == nil {
		return
	}
	pm.rejections.Add(ctx, 1, metric.WithAttributes(
		AttrOperation.String(operation),
		AttrErrorCode.String(code),
	))
}

// RecordCartLineCreated records a new parcel-bearing cart line.
func (pm *ParcelMetrics) RecordCartLineCreated(ctx context.Context, productID string, fragile bool) {
	if pm == nil {
		return
	}
	pm.linesCreated.Add(ctx, 1, metric.WithAttributes(
		AttrProductID.String(productID),
		AttrFragile.Bool(fragile),
	))
}

// RecordRecalculation records one totals pass over a cart.
func (pm *ParcelMetrics) RecordRecalculation(ctx context.Context, parcelLines int) {
	if pm == nil {
		return
	}
	pm.recalculations.Add(ctx, 1, metric.WithAttributes(AttrLineCount.Int(parcelLines)))
}

// RecordOrderCommitted records a placed order and its amount.
func (pm *ParcelMetrics) RecordOrderCommitted(ctx context.Context, total valueobject.Money) {
	if pm == nil {
		return
	}
	attrs := metric.WithAttributeSet(attribute.NewSet(AttrCurrency.String(string(total.Currency()))))
	pm.ordersPlaced.Add(ctx, 1, attrs)
	pm.orderAmount.Add(ctx, total.MinorUnits(), attrs)
}
