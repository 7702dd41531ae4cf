package telemetry

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
)

// ErrNilMeter is returned when an instrument set is built without a meter.
var ErrNilMeter = errors.New("telemetry: meter is nil")

// Metric attribute keys.
var (
	AttrResult    = attribute.Key("result")
	AttrErrorCode = attribute.Key("error_code")
	AttrOperation = attribute.Key("operation")
	AttrCurrency  = attribute.Key("currency")
	AttrFragile   = attribute.Key("fragile")
	AttrProductID = attribute.Key("product_id")
	AttrLineCount = attribute.Key("line_count")

	AttrHTTPMethod     = attribute.Key("http_method")
	AttrHTTPRoute      = attribute.Key("http_route")
	AttrHTTPStatusCode = attribute.Key("http_status_code")
)

// HTTPDurationBuckets are request latency boundaries in seconds.
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// QuoteDurationBuckets are boundaries in seconds for pricing a single
// parcel, which never leaves the process.
var QuoteDurationBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01}
