// Package metrics defines and registers all custom Prometheus metrics for the
// catalog API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "locked", "invalid_request" or "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthLockoutsTotal counts logins rejected because the identifier is locked out.
var AuthLockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "lockouts_total",
		Help:      "Total number of login attempts rejected by the lockout.",
	},
)

// ── Card metrics ──────────────────────────────────────────────────────────────

// CardViewsTotal counts successful single-card fetches.
var CardViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cards",
		Name:      "views_total",
		Help:      "Total number of card views served.",
	},
)

// CardQueriesTotal counts card listings.
// Label:
//   - filtered: "true" when at least one predicate applied, "false" otherwise
var CardQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cards",
		Name:      "queries_total",
		Help:      "Total number of card listings, labelled by whether a filter applied.",
	},
	[]string{"filtered"},
)
