// Package metrics defines and registers all custom Prometheus metrics for the
// Kommer client. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at import time via promauto;
// embedders expose them however they expose the rest of their telemetry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kommer_client"

// RequestsTotal counts completed backend calls.
// Labels:
//   - endpoint: logical operation name (e.g. "login", "list_posts")
//   - code: HTTP status code, or "network_error" when no response arrived
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend API calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "code"},
)

// RequestDuration measures the round-trip time of a backend call.
// Label:
//   - endpoint: logical operation name
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API calls from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - outcome: "restored", "rejected", "expired", "none", or "error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restore attempts, by outcome.",
	},
	[]string{"outcome"},
)

// FavouriteRollbacksTotal counts optimistic favorite toggles that had to be
// reverted after the backend rejected them.
var FavouriteRollbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favourite_rollbacks_total",
		Help:      "Total number of optimistic favorite toggles reverted on failure.",
	},
)
