// Package metrics defines the Prometheus instrumentation for the routing
// service: upstream API traffic and end-to-end plan outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts calls to the external geocoding/routing
	// APIs by outcome ("success" or an error kind).
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_upstream_requests_total",
			Help: "Total requests to upstream APIs by api and outcome",
		},
		[]string{"api", "outcome"},
	)

	// UpstreamRequestDuration tracks upstream call latency in seconds.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routing_upstream_request_duration_seconds",
			Help:    "Latency of upstream API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api"},
	)

	// PlansTotal counts route-planning requests by final outcome. Failures
	// are labelled with the stage that aborted the plan.
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_plans_total",
			Help: "Total route plans by outcome and stage",
		},
		[]string{"outcome", "stage"},
	)

	// RetryAttemptsTotal counts retry attempts made by the optional retry
	// decorators, by wrapped api.
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_retry_attempts_total",
			Help: "Total retry attempts by api",
		},
		[]string{"api"},
	)
)
