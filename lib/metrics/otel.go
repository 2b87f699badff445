package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTel records through OpenTelemetry instruments. Export is left to the
// MeterProvider (see lib/telemetry).
type OTel struct {
	requests      metric.Int64Counter
	duration      metric.Float64Histogram
	queryDuration metric.Float64Histogram
}

// NewOTel creates the instruments on a meter named after the service.
func NewOTel(provider metric.MeterProvider, service string) (*OTel, error) {
	meter := provider.Meter(service)

	requests, err := meter.Int64Counter(HTTPRequestsTotal,
		metric.WithDescription("Total number of HTTP requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", HTTPRequestsTotal, err)
	}

	duration, err := meter.Float64Histogram(HTTPRequestDuration,
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", HTTPRequestDuration, err)
	}

	queryDuration, err := meter.Float64Histogram(DatabaseQueryDuration,
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", DatabaseQueryDuration, err)
	}

	return &OTel{
		requests:      requests,
		duration:      duration,
		queryDuration: queryDuration,
	}, nil
}

func (o *OTel) IncHTTPRequests(method, route, status string) {
	o.requests.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", status),
	))
}

func (o *OTel) ObserveHTTPDuration(method, route string, d time.Duration) {
	o.duration.Record(context.Background(), d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

func (o *OTel) ObserveQueryDuration(queryType string, d time.Duration) {
	o.queryDuration.Record(context.Background(), d.Seconds(), metric.WithAttributes(
		attribute.String("query_type", queryType),
	))
}
