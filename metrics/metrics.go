// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mqlpromql"

// LLM round trips dominate latency, so the histogram reaches well past the
// default bucket ceiling.
var durationBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60}

// Metrics holds the service's instruments, registered on a caller-supplied
// registerer so tests can use an isolated registry.
type Metrics struct {
	conversions         *prometheus.CounterVec
	translationDuration prometheus.Histogram
}

// New creates the instruments and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversion requests by outcome.",
		}, []string{"outcome"}),
		translationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "translation_duration_seconds",
			Help:      "Latency of LLM translation calls.",
			Buckets:   durationBuckets,
		}),
	}
	reg.MustRegister(m.conversions, m.translationDuration)
	return m
}

// RecordOutcome counts one finished conversion under the given outcome label.
func (m *Metrics) RecordOutcome(outcome string) {
	m.conversions.WithLabelValues(outcome).Inc()
}

// ObserveTranslationDuration records the latency of one translation call.
// Only calls that actually reached the LLM should be observed.
func (m *Metrics) ObserveTranslationDuration(d time.Duration) {
	m.translationDuration.Observe(d.Seconds())
}
