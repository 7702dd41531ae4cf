package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parcelcart/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var requestSizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000}

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	size     metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in     httpInstruments
		err, e error
	)
	in.requests, e = meter.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests by method, route and status"),
		metric.WithUnit("{request}"))
	err = errors.Join(err, e)

	in.duration, e = meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(telemetry.HTTPDurationBuckets...))
	err = errors.Join(err, e)

	in.size, e = meter.Float64Histogram("http_server_request_size_bytes",
		metric.WithDescription("HTTP request body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(requestSizeBuckets...))
	err = errors.Join(err, e)

	in.active, e = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests currently in flight"),
		metric.WithUnit("{request}"))
	err = errors.Join(err, e)

	if err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics records request count, latency, body size and in-flight
// requests on meter. Routes are labelled by their pattern ("/api/v1/carts/:id")
// so cart and order ids do not become label values. A nil meter disables
// the middleware.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	if meter == nil {
		return passthrough
	}
	in, err := newHTTPInstruments(meter)
	if err != nil {
		return passthrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		in.active.Add(ctx, 1)
		defer in.active.Add(ctx, -1)

		c.Next()

		attrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(routePattern(c)),
		}
		route := metric.WithAttributes(attrs...)
		in.duration.Record(ctx, time.Since(start).Seconds(), route)
		if size := c.Request.ContentLength; size > 0 {
			in.size.Record(ctx, float64(size), route)
		}
		in.requests.Add(ctx, 1, metric.WithAttributes(
			append(attrs, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))...,
		))
	}
}

func passthrough(c *gin.Context) {
	c.Next()
}

func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}
