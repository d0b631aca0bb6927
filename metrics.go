package jwtauth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resume-platform/jwtauth/core"
)

// PrometheusMetrics implements core.Metrics using Prometheus. It exports
// jwtauth_outcomes_total{source,reason} and
// jwtauth_validation_duration_seconds{source}.
type PrometheusMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// Registering twice on the same registerer fails.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jwtauth",
			Name:      "outcomes_total",
			Help:      "Token validation outcomes by token source and failure reason.",
		}, []string{"source", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jwtauth",
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating tokens.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		}, []string{"source"}),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOutcome implements core.Metrics.
func (m *PrometheusMetrics) ObserveOutcome(source core.SourceKind, reason core.FailureReason, duration time.Duration) {
	m.outcomes.WithLabelValues(source.String(), reason.Code()).Inc()
	m.duration.WithLabelValues(source.String()).Observe(duration.Seconds())
}
