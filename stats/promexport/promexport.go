// Package promexport mirrors a *stats.Context into Prometheus gauges,
// grounded on jhkimqd-chaos-utils' use of prometheus/client_golang for
// its own runtime metrics — optional and additive, never required by
// check.Check itself.
package promexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rapidx-dev/rapidx/stats"
)

// Exporter holds the gauge vectors a caller registers against their own
// Prometheus registry.
type Exporter struct {
	mean     *prometheus.GaugeVec
	variance *prometheus.GaugeVec
	count    *prometheus.GaugeVec
	events   *prometheus.GaugeVec
}

// NewExporter builds an Exporter with metric names under namespace.
func NewExporter(namespace string) *Exporter {
	return &Exporter{
		mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "quantifier_index_mean",
			Help: "Mean of Arbitrary.CalculateIndex observations per quantifier.",
		}, []string{"quantifier"}),
		variance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "quantifier_index_variance",
			Help: "Variance of Arbitrary.CalculateIndex observations per quantifier.",
		}, []string{"quantifier"}),
		count: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "quantifier_sample_count",
			Help: "Number of samples observed per quantifier.",
		}, []string{"quantifier"}),
		events: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_event_count",
			Help: "Run-wide event counters (discarded, shrink-step, budget-exhausted, ...).",
		}, []string{"event"}),
	}
}

// Collectors returns every gauge vector, ready for registry.MustRegister.
func (e *Exporter) Collectors() []prometheus.Collector {
	return []prometheus.Collector{e.mean, e.variance, e.count, e.events}
}

// Update refreshes every gauge from a fresh context snapshot.
func (e *Exporter) Update(ctx *stats.Context) {
	for name, summary := range ctx.Snapshot() {
		e.mean.WithLabelValues(name).Set(summary.Mean)
		e.variance.WithLabelValues(name).Set(summary.Variance)
		e.count.WithLabelValues(name).Set(float64(summary.Count))
	}
	for name, n := range ctx.Events() {
		e.events.WithLabelValues(name).Set(float64(n))
	}
}
