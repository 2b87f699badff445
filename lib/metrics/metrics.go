package metrics

import (
	"fmt"
	"time"
)

// Metric names shared by every backend
const (
	HTTPRequestsTotal     = "http_requests_total"
	HTTPRequestDuration   = "http_request_duration_seconds"
	DatabaseQueryDuration = "database_query_duration_seconds"
)

// Recorder is the metrics collaborator handed to handlers and stores.
type Recorder interface {
	// IncHTTPRequests counts a finished request.
	IncHTTPRequests(method, route, status string)
	// ObserveHTTPDuration records how long a request took.
	ObserveHTTPDuration(method, route string, d time.Duration)
	// ObserveQueryDuration records how long a database query took.
	ObserveQueryDuration(queryType string, d time.Duration)
}

// Backend names accepted by config
const (
	BackendPrometheus = "prometheus"
	BackendOTel       = "otel"
	BackendNone       = "none"
)

// Nop discards every observation.
type Nop struct{}

func (Nop) IncHTTPRequests(method, route, status string)              {}
func (Nop) ObserveHTTPDuration(method, route string, d time.Duration) {}
func (Nop) ObserveQueryDuration(queryType string, d time.Duration)    {}

// ErrUnknownBackend is returned for a backend name no recorder exists for.
type ErrUnknownBackend struct {
	Name string
}

func (e ErrUnknownBackend) Error() string {
	return fmt.Sprintf("unknown metrics backend %q", e.Name)
}
