// Package metrics declares the Prometheus collectors shared by the HTTP
// layer, the recommendation workflow and the outbound adapters.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playnext_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playnext_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playnext_recommendations_total",
			Help: "Recommendation responses by where they were served from",
		},
		[]string{"source"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playnext_upstream_requests_total",
			Help: "Outbound adapter calls by outcome",
		},
		[]string{"adapter", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playnext_circuit_breaker_state",
			Help: "Adapter breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"adapter"},
	)
)

// Recommendation sources.
const (
	SourceRedis     = "redis"
	SourceDatabase  = "database"
	SourceGenerated = "generated"
	SourceDegraded  = "degraded"
)

// ObserveUpstream records one adapter call.
func ObserveUpstream(adapter string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		outcome = "timeout"
	default:
		outcome = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(adapter, outcome).Inc()
}

// SetBreakerState mirrors a breaker transition into the gauge.
func SetBreakerState(adapter string, state gobreaker.State) {
	CircuitBreakerState.WithLabelValues(adapter).Set(float64(state))
}
