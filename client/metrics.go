// client/metrics.go
package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "solana_client"

// Metrics instruments submissions, confirmation waits and the blockhash
// cache. A nil *Metrics is valid and records nothing.
type Metrics struct {
	submissions    *prometheus.CounterVec
	confirmations  *prometheus.CounterVec
	confirmSeconds prometheus.Histogram
	statusPolls    prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

// NewMetrics builds the metric set and registers it with reg. A nil reg
// falls back to the default prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Raw transaction submissions by outcome",
		}, []string{"outcome"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "confirmations_total",
			Help:      "Confirmation waits by outcome",
		}, []string{"outcome"}),
		confirmSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "confirmation_duration_seconds",
			Help:      "Confirmation wait duration in seconds",
			Buckets:   prometheus.LinearBuckets(0, 0.5, 12),
		}),
		statusPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "status_polls_total",
			Help:      "Total signature status queries issued while confirming",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blockhash_cache_hits_total",
			Help:      "Submissions served a blockhash from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "blockhash_cache_misses_total",
			Help:      "Submissions that fell back to a network blockhash fetch",
		}),
	}

	reg.MustRegister(
		m.submissions,
		m.confirmations,
		m.confirmSeconds,
		m.statusPolls,
		m.cacheHits,
		m.cacheMisses,
	)
	return m
}

func (m *Metrics) trackSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) trackConfirmation(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(outcome).Inc()
	m.confirmSeconds.Observe(time.Since(start).Seconds())
}

func (m *Metrics) trackStatusPoll() {
	if m == nil {
		return
	}
	m.statusPolls.Inc()
}

func (m *Metrics) trackCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) trackCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
