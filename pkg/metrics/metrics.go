// Package metrics defines the Prometheus metric collectors used across the
// platform and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the platform.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	RecipeOperations     *prometheus.CounterVec
	QueryResultsCount    *prometheus.HistogramVec
	CollectionSize       prometheus.Gauge
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	EventsDroppedTotal   prometheus.Counter
	ReportSavesTotal     *prometheus.CounterVec
	RateLimitRejects     prometheus.Counter
}

// New creates all collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in services and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		RecipeOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_operations_total",
				Help: "Recipe store operations by operation and outcome (ok, duplicate_name, not_found, ...).",
			},
			[]string{"operation", "outcome"},
		),
		QueryResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_query_results_count",
				Help:    "Number of recipes returned per search or filter.",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
			},
			[]string{"operation"},
		),
		CollectionSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "recipe_collection_size",
				Help: "Number of recipes currently held.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of search cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of search cache misses.",
			},
		),
		EventsDroppedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "analytics_events_dropped_total",
				Help: "Analytics events dropped because the collector buffer was full.",
			},
		),
		ReportSavesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_saves_total",
				Help: "Statistics report snapshots by status.",
			},
			[]string{"status"},
		),
		RateLimitRejects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limit_rejects_total",
				Help: "Requests rejected by the API rate limiter.",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.RecipeOperations,
		m.QueryResultsCount,
		m.CollectionSize,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.EventsDroppedTotal,
		m.ReportSavesTotal,
		m.RateLimitRejects,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
