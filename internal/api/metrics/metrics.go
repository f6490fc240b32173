// Package metrics defines and registers all custom Prometheus metrics for the
// EcoQuest API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecoquest"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthOutcomesTotal counts how the authentication gateway resolved requests.
// Label:
//   - outcome: "authenticated", "no_token", "invalid_token", "unknown_principal",
//     "missing_role", "lookup_failed" or "internal_error"
var AuthOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_outcomes_total",
		Help:      "Total number of requests seen by the authentication gateway, by outcome.",
	},
	[]string{"outcome"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts read-through cache lookups.
// Labels:
//   - cache: the named cache (e.g. "tasks", "categories")
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups, labelled by cache and result.",
	},
	[]string{"cache", "result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskEventsTotal counts task-created notifications.
// Label:
//   - result: "published", "publish_failed", "handled", "handle_failed" or "decode_failed"
var TaskEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_events_total",
		Help:      "Total number of task-created events, by result.",
	},
	[]string{"result"},
)

// TaskEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TaskEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "task_events_queue_depth",
		Help:      "Current number of task events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
