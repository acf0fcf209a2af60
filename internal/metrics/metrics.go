// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillmatch_jobs_scored_total",
			Help: "Total number of job postings scored",
		},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillmatch_operation_duration_seconds",
			Help:    "Duration of scoring and gap operations in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"operation"},
	)

	GapItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skillmatch_gap_items",
			Help:    "Number of items in each computed gap list",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillmatch_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "skillmatch_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route"},
	)

	ResultCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillmatch_result_cache_total",
			Help: "Response cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
