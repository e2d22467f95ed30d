// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Classification Metrics
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_classifications_total",
			Help: "Total number of completed classifications",
		},
		[]string{"category", "label"},
	)

	MissingAnswers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_missing_answers_total",
			Help: "Total number of classify calls rejected for incomplete answers",
		},
	)

	// Catalog Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_catalog_requests_total",
			Help: "Total number of catalog requests by label and outcome",
		},
		[]string{"label", "outcome"},
	)

	CatalogDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"label"},
	)

	// HTTP Metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveCatalog records one catalog request.
func ObserveCatalog(label, outcome string, d time.Duration) {
	CatalogRequests.WithLabelValues(label, outcome).Inc()
	CatalogDuration.WithLabelValues(label).Observe(d.Seconds())
}

// ObserveHTTP records one served HTTP request.
func ObserveHTTP(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
