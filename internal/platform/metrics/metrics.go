package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Components accept
// a nil *Metrics in tests, so every observation site nil-guards.
type Metrics struct {
	CommitsSubmitted   prometheus.Counter
	CommitsApproved    prometheus.Counter
	StoreWriteFailures prometheus.Counter
	FallbackReads      prometheus.Counter
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics. Call it once per process;
// promauto registers against the default registry.
func New() *Metrics {
	return &Metrics{
		CommitsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taproom_commits_submitted_total",
			Help: "Total number of commit messages accepted for persistence",
		}),
		CommitsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taproom_commits_approved_total",
			Help: "Total number of pending commits transitioned to approved",
		}),
		StoreWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taproom_store_write_failures_total",
			Help: "Total number of backing file writes that failed or conflicted",
		}),
		FallbackReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taproom_store_fallback_reads_total",
			Help: "Total number of reads served from the local fallback copy",
		}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taproom_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveHTTP records one request's latency. Safe on a nil receiver.
func (m *Metrics) ObserveHTTP(method, route string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncCommitsSubmitted increments the submitted counter. Safe on nil.
func (m *Metrics) IncCommitsSubmitted() {
	if m != nil {
		m.CommitsSubmitted.Inc()
	}
}

// IncCommitsApproved increments the approved counter. Safe on nil.
func (m *Metrics) IncCommitsApproved() {
	if m != nil {
		m.CommitsApproved.Inc()
	}
}

// IncStoreWriteFailures increments the write failure counter. Safe on nil.
func (m *Metrics) IncStoreWriteFailures() {
	if m != nil {
		m.StoreWriteFailures.Inc()
	}
}

// IncFallbackReads increments the fallback read counter. Safe on nil.
func (m *Metrics) IncFallbackReads() {
	if m != nil {
		m.FallbackReads.Inc()
	}
}
