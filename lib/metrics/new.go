package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

// New builds the recorder for backend. Prometheus collectors go on the
// default registerer; the OTel recorder uses the global MeterProvider.
func New(backend, service string) (Recorder, error) {
	switch backend {
	case BackendPrometheus, "":
		return NewPrometheus(prometheus.DefaultRegisterer), nil
	case BackendOTel:
		rec, err := NewOTel(otel.GetMeterProvider(), service)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, ErrUnknownBackend{Name: backend}
	}
}
