package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the business counters.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// MetricsRegistry holds all Prometheus metrics for the booking service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	BookingsTotal           *prometheus.CounterVec
	FlightsProvisionedTotal *prometheus.CounterVec
	SeatsGeneratedTotal     prometheus.Counter
	LockWaitSeconds         *prometheus.HistogramVec
	RateLimitedTotal        *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry so registrations never collide.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airline_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airline_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		BookingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_bookings_total",
				Help: "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		FlightsProvisionedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_flights_provisioned_total",
				Help: "Flight create/update/restore attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		SeatsGeneratedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airline_seats_generated_total",
				Help: "Seat rows generated for new flights",
			},
		),
		LockWaitSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airline_lock_wait_seconds",
				Help:    "Time spent waiting for named serialization locks",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"scope"},
		),
		RateLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_rate_limited_total",
				Help: "Requests rejected by the per-IP rate limiter",
			},
			[]string{"endpoint"},
		),
	}
}

// Outcome maps an error category onto an outcome label.
func Outcome(category string) string {
	switch category {
	case "":
		return OutcomeSuccess
	case "conflict":
		return OutcomeConflict
	case "not_found":
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
