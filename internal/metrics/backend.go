package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BackendRequestsTotal counts outbound backend searches by backend
	// ("jira"/"confluence") and status ("success"/"error").
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlasbridge",
			Name:      "backend_requests_total",
			Help:      "Total number of outbound backend requests",
		},
		[]string{"backend", "status"},
	)

	// BackendRequestDuration tracks outbound request latency per backend.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlasbridge",
			Name:      "backend_request_duration_seconds",
			Help:      "Outbound backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	// CacheTotal counts result-cache lookups by backend and result
	// ("hit"/"miss").
	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlasbridge",
			Name:      "result_cache_total",
			Help:      "Result cache lookups by outcome",
		},
		[]string{"backend", "result"},
	)
)

// RegisterBackendMetrics registers the backend and cache metrics.
// Called once from the composition root; no init() side effects.
func RegisterBackendMetrics() {
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(CacheTotal)
}
