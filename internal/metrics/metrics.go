package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Skill webhook metrics
	SkillRequestsTotal   *prometheus.CounterVec
	SkillDurationSeconds *prometheus.HistogramVec

	// NEIS fetch metrics
	FetchRequestsTotal   *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SkillRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_skill_requests_total",
				Help: "Total number of skill requests by capability and status",
			},
			[]string{"capability", "status"}, // status: success, error
		),

		SkillDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kakaobot_skill_duration_seconds",
				Help:    "Skill request handling duration in seconds by capability",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}, // Kakao gives skills 5s total
			},
			[]string{"capability"},
		),

		FetchRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_neis_requests_total",
				Help: "Total number of NEIS API requests by endpoint and status",
			},
			[]string{"endpoint", "status"}, // status: success, empty, error, timeout
		),

		FetchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kakaobot_neis_duration_seconds",
				Help:    "NEIS API request duration in seconds by endpoint",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3},
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_cache_hits_total",
				Help: "Total number of NEIS cache hits by endpoint",
			},
			[]string{"endpoint"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_cache_misses_total",
				Help: "Total number of NEIS cache misses by endpoint",
			},
			[]string{"endpoint"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"}, // error_type: method_not_allowed, invalid_signature, bad_payload
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kakaobot_singleflight_dedup_total",
				Help: "Total number of deduplicated NEIS fetches (requests that waited instead of executing)",
			},
			[]string{"endpoint"},
		),
	}

	return m
}

// RecordSkill records a handled skill request
func (m *Metrics) RecordSkill(capability, status string, duration float64) {
	m.SkillRequestsTotal.WithLabelValues(capability, status).Inc()
	m.SkillDurationSeconds.WithLabelValues(capability).Observe(duration)
}

// RecordFetch records a NEIS API request with status
func (m *Metrics) RecordFetch(endpoint, status string, duration float64) {
	m.FetchRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.FetchDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(endpoint string) {
	m.CacheHitsTotal.WithLabelValues(endpoint).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(endpoint string) {
	m.CacheMissesTotal.WithLabelValues(endpoint).Inc()
}

// RecordHTTPError records an HTTP-level rejection
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordSingleflightDedup records a deduplicated fetch
func (m *Metrics) RecordSingleflightDedup(endpoint string) {
	m.SingleflightDedupTotal.WithLabelValues(endpoint).Inc()
}
