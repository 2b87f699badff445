package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.IncHTTPRequests("GET", "/api/users", "500")
	p.IncHTTPRequests("GET", "/api/users", "500")
	p.IncHTTPRequests("GET", "/api/users", "200")
	p.ObserveHTTPDuration("GET", "/api/users", 120*time.Millisecond)
	p.ObserveQueryDuration("users_query", 30*time.Millisecond)

	if got := testutil.ToFloat64(p.requests.WithLabelValues("GET", "/api/users", "500")); got != 2 {
		t.Errorf("Expected 2 failed requests, got %v", got)
	}
	if got := testutil.CollectAndCount(p.queryDuration, DatabaseQueryDuration); got != 1 {
		t.Errorf("Expected 1 query duration series, got %d", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{HTTPRequestsTotal, HTTPRequestDuration, DatabaseQueryDuration} {
		if !names[want] {
			t.Errorf("Expected metric family %s", want)
		}
	}
}

func TestOTelRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	o, err := NewOTel(provider, "usersvc-test")
	if err != nil {
		t.Fatalf("NewOTel failed: %v", err)
	}

	o.IncHTTPRequests("GET", "/api/users", "500")
	o.ObserveHTTPDuration("GET", "/api/users", time.Second)
	o.ObserveQueryDuration("users_query", 250*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	found := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = m
		}
	}

	counter, ok := found[HTTPRequestsTotal].Data.(metricdata.Sum[int64])
	if !ok || len(counter.DataPoints) != 1 {
		t.Fatalf("Expected one counter data point, got %+v", found[HTTPRequestsTotal])
	}
	dp := counter.DataPoints[0]
	if dp.Value != 1 {
		t.Errorf("Expected counter 1, got %d", dp.Value)
	}
	if status, _ := dp.Attributes.Value(attribute.Key("status")); status.AsString() != "500" {
		t.Errorf("Expected status 500, got %q", status.AsString())
	}

	hist, ok := found[DatabaseQueryDuration].Data.(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) != 1 {
		t.Fatalf("Expected one query histogram point, got %+v", found[DatabaseQueryDuration])
	}
	if hist.DataPoints[0].Sum != 0.25 {
		t.Errorf("Expected sum 0.25, got %v", hist.DataPoints[0].Sum)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New("statsd", "usersvc")
	var unknown ErrUnknownBackend
	if !errors.As(err, &unknown) || unknown.Name != "statsd" {
		t.Errorf("Expected ErrUnknownBackend, got %v", err)
	}

	rec, err := New(BackendNone, "usersvc")
	if err != nil {
		t.Fatalf("Expected nop recorder, got %v", err)
	}
	if _, ok := rec.(Nop); !ok {
		t.Errorf("Expected Nop, got %T", rec)
	}
}
