// Package metrics defines and registers all custom Prometheus metrics for
// the hospital portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts credential exchanges that reached a terminal outcome.
// Label:
//   - outcome: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDecisionsTotal counts route-guard evaluations.
// Labels:
//   - gate: "authenticated" or "role"
//   - decision: "render", "redirect_login", or "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by gate and decision.",
	},
	[]string{"gate", "decision"},
)

// BackendExchangeDuration measures the latency of credential exchanges with
// the hospital backend.
// Labels:
//   - operation: "register", "login", "logout", "verify_token", "refresh_token"
//   - outcome: "ok" or "error"
var BackendExchangeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_exchange_duration_seconds",
		Help:      "Duration of auth exchanges against the hospital backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)

// SessionsEvictedTotal counts sessions removed by the verification janitor.
var SessionsEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_evicted_total",
		Help:      "Total number of sessions evicted after the backend rejected their token.",
	},
)
