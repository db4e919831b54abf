// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the relayout service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// DurationBuckets defines histogram buckets suited for text conversion
// request latencies, ranging from 1ms to 10s.
var DurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayout_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relayout_request_duration_seconds",
			Help:    "Request duration",
			Buckets: DurationBuckets,
		},
		[]string{"method"},
	)

	// ConversionsTotal counts completed conversions by layout pair and
	// execution mode ("sequential" or "parallel").
	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayout_conversions_total",
			Help: "Completed conversions",
		},
		[]string{"from", "to", "mode"},
	)

	// ConvertedCharsTotal counts characters converted across all requests.
	ConvertedCharsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relayout_converted_chars_total",
			Help: "Converted characters",
		},
	)

	// TableMissesTotal counts lookups for layout pairs with no keymap table.
	TableMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayout_table_misses_total",
			Help: "Keymap table misses",
		},
		[]string{"from", "to"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayout_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ConversionsTotal,
		ConvertedCharsTotal,
		TableMissesTotal,
		RateLimitRejectedTotal,
	)
}
