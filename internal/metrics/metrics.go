// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Scoring
	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_evaluations_total",
			Help: "Item evaluations by resulting risk level",
		},
		[]string{"risk_level"},
	)

	HardBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_hard_blocks_total",
			Help: "Evaluations short-circuited by a hard safety filter",
		},
		[]string{"rule"}, // "allergen", "diabetes_sugar", "hypertension_sodium", "diet"
	)

	MenuComposeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "canteen_menu_compose_duration_seconds",
			Help:    "Time spent composing a scored menu",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// Estimator
	EstimatorFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_estimator_fallbacks_total",
			Help: "Estimator calls replaced by the neutral probability",
		},
		[]string{"reason"}, // "timeout", "error", "breaker_open", "out_of_range", "panic", "canceled"
	)

	EstimatorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "canteen_estimator_duration_seconds",
			Help:    "Latency of estimator calls",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "canteen_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Domain writes
	ProfileWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_profile_writes_total",
			Help: "Onboarding writes by step and outcome",
		},
		[]string{"step", "result"},
	)

	Orders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_orders_total",
			Help: "Order attempts by outcome",
		},
		[]string{"result"}, // "created", "empty", "not_found", "out_of_stock", "error"
	)

	ChatQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_chat_queries_total",
			Help: "Chatbot queries by answer kind",
		},
		[]string{"kind"}, // "catalog", "generic"
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

// RecordHTTPRequest records the outcome and latency of one request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
