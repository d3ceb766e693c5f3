// Package metrics exposes Prometheus instruments for insight analysis
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "insights"

// Status labels for analysis outcomes
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Recorder records analysis latency, outcomes and insufficient-data results
type Recorder struct {
	duration     *prometheus.HistogramVec
	analyses     *prometheus.CounterVec
	insufficient *prometheus.CounterVec
}

// NewRecorder registers the instruments on reg. A nil reg creates a private
// registry, which keeps tests isolated from the default one.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent fetching records and computing insights, by scope.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"scope"}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_total",
			Help:      "Insight analyses by scope and outcome.",
		}, []string{"scope", "status"}),
		insufficient: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insufficient_data_total",
			Help:      "Domain analyses that fell below the minimum sample size.",
		}, []string{"domain"}),
	}
}

// ObserveAnalysis records one analysis of the given scope
func (r *Recorder) ObserveAnalysis(scope, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(scope).Observe(elapsed.Seconds())
	r.analyses.WithLabelValues(scope, status).Inc()
}

// InsufficientData records a domain result that was gated by sample size
func (r *Recorder) InsufficientData(domain string) {
	if r == nil {
		return
	}
	r.insufficient.WithLabelValues(domain).Inc()
}
