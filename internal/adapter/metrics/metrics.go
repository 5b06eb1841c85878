package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics holds all Prometheus metrics for the contact API.
type APIMetrics struct {
	GraphQLRequestsTotal    *prometheus.CounterVec
	ExternalRequestsTotal   *prometheus.CounterVec
	ExternalRequestDuration *prometheus.HistogramVec
	RateLimitedTotal        prometheus.Counter
	ValidationCacheHits     prometheus.Counter
	ValidationCacheMisses   prometheus.Counter
}

// NewAPIMetrics initializes and registers the Prometheus metrics.
func NewAPIMetrics() *APIMetrics {
	return &APIMetrics{
		GraphQLRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_hub",
			Subsystem: "api",
			Name:      "graphql_requests_total",
			Help:      "Total number of GraphQL requests by HTTP status.",
		}, []string{"status"}),
		ExternalRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_hub",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of requests to external services by service and status.",
		}, []string{"service", "status"}), // service: phone_validation, worldtime
		ExternalRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "contact_hub",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests to external services.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
		RateLimitedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "contact_hub",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter.",
		}),
		ValidationCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "contact_hub",
			Subsystem: "upstream",
			Name:      "validation_cache_hits_total",
			Help:      "Total number of phone validation answers served from cache.",
		}),
		ValidationCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "contact_hub",
			Subsystem: "upstream",
			Name:      "validation_cache_misses_total",
			Help:      "Total number of phone validation cache misses.",
		}),
	}
}
