package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for SafariTracker
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Store Metrics
	StoreQueriesTotal  *prometheus.CounterVec
	StoreQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	FeedFetchFailuresTotal prometheus.Counter
	SubmissionsTotal       *prometheus.CounterVec
	UrgentAlertsTotal      *prometheus.CounterVec
	StatsRefreshDuration   prometheus.Histogram
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "safaritracker_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "safaritracker_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Store Metrics
		StoreQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_store_queries_total",
				Help: "Total sighting store calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		StoreQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "safaritracker_store_query_duration_seconds",
				Help:    "Sighting store call latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		FeedFetchFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safaritracker_feed_fetch_failures_total",
				Help: "Feed fetches that could not complete",
			},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_submissions_total",
				Help: "Sighting submissions by outcome and status",
			},
			[]string{"outcome", "status"},
		),
		UrgentAlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safaritracker_urgent_alerts_total",
				Help: "Urgent sighting alerts by pipeline stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		StatsRefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "safaritracker_stats_refresh_duration_seconds",
				Help:    "Reserve stats refresh time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}
