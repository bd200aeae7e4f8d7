// Package metrics holds the Prometheus collectors shared by the storefront's
// outbound clients.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Outbound tracks calls made to an external collaborator (registrar, payment
// provider, webhook endpoint). A nil *Outbound records nothing.
type Outbound struct {
	Calls   *prometheus.CounterVec
	Latency *prometheus.HistogramVec
}

// NewOutbound registers the collectors for collaborator on reg.
func NewOutbound(reg prometheus.Registerer, collaborator string) *Outbound {
	factory := promauto.With(reg)

	return &Outbound{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "domainshop",
			Subsystem: collaborator,
			Name:      "calls_total",
			Help:      "Total outbound calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "domainshop",
			Subsystem: collaborator,
			Name:      "call_duration_seconds",
			Help:      "Duration of outbound calls by operation",
			Buckets:   DefaultBuckets,
		}, []string{"operation"}),
	}
}

// Observe records one call of operation that ended with outcome.
func (m *Outbound) Observe(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(operation, outcome).Inc()
	m.Latency.WithLabelValues(operation).Observe(d.Seconds())
}
