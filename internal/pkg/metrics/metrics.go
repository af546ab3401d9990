// Package metrics exposes Prometheus collectors for the dispatch cycles.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cycle outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

type Metrics struct {
	registry *prometheus.Registry

	CycleRuns     *prometheus.CounterVec
	CycleDuration *prometheus.HistogramVec
	OrdersCreated prometheus.Counter
}

// New registers every collector, plus Go runtime and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CycleRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_cycle_runs_total",
			Help: "Dispatch cycle runs by cycle and outcome",
		}, []string{"cycle", "outcome"}),

		CycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_cycle_duration_seconds",
			Help:    "Duration of dispatch cycle runs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"cycle"}),

		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_orders_created_total",
			Help: "Orders accepted through the API",
		}),
	}
}

// ObserveCycle records one finished cycle run.
func (m *Metrics) ObserveCycle(cycle, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CycleRuns.WithLabelValues(cycle, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.CycleDuration.WithLabelValues(cycle).Observe(d.Seconds())
	}
}

func (m *Metrics) IncOrdersCreated() {
	if m != nil {
		m.OrdersCreated.Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
