// Package metrics exposes the Prometheus collectors for the intake API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters incremented by the services. A single instance
// is created in main and shared through constructor injection so tests can
// use an isolated registry.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Exports     prometheus.Counter
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Public form submissions accepted, by entity.",
		}, []string{"entity"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Successful status transitions, by entity and target status.",
		}, []string{"entity", "to_status"}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Name: "lead_exports_total",
			Help: "CSV exports generated.",
		}),
	}
}

// NewNop returns metrics backed by a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
