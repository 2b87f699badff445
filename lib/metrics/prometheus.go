package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus records through client_golang collectors.
type Prometheus struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on reg. Passing
// prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestsTotal,
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    HTTPRequestDuration,
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.1, 0.3, 0.5, 0.7, 1, 3, 5, 7, 10},
		}, []string{"method", "route"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    DatabaseQueryDuration,
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5},
		}, []string{"query_type"}),
	}
}

func (p *Prometheus) IncHTTPRequests(method, route, status string) {
	p.requests.WithLabelValues(method, route, status).Inc()
}

func (p *Prometheus) ObserveHTTPDuration(method, route string, d time.Duration) {
	p.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) ObserveQueryDuration(queryType string, d time.Duration) {
	p.queryDuration.WithLabelValues(queryType).Observe(d.Seconds())
}
