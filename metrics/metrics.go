// Package metrics provides Prometheus metrics for the symptom finder.
// HTTP metrics are recorded by the Metrics middleware; catalog metrics are
// updated by the data container, the search handler and the source monitor.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (client IPs currently tracked)",
		},
	)

	CatalogRecordsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_records_loaded",
			Help: "Number of records in the loaded catalog (0 when unavailable)",
		},
	)

	CatalogRowsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_dropped_total",
			Help: "Source rows removed by the completeness filter",
		},
		[]string{"reason"},
	)

	CatalogLoadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_load_failures_total",
			Help: "Catalog loads that ended with the catalog unavailable",
		},
	)

	CatalogSearchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_search_total",
			Help: "Records returned by symptom searches, per sale channel",
		},
		[]string{"channel"},
	)

	CatalogSourceStale = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_source_stale",
			Help: "1 when the catalog source changed on disk after the last load",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(CatalogRecordsLoaded)
	prometheus.MustRegister(CatalogRowsDropped)
	prometheus.MustRegister(CatalogLoadFailures)
	prometheus.MustRegister(CatalogSearchResults)
	prometheus.MustRegister(CatalogSourceStale)
}
