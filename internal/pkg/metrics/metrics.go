// Package metrics defines and registers the custom Prometheus metrics of the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default registry on import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "username_taken", "email_taken", "conflict", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks made by the auth gate.
// Label:
//   - result: "ok", "missing", "malformed", "signature_mismatch", "expired", "unknown_subject"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductOperationsTotal counts completed product operations.
// Label:
//   - op: "create", "update", "delete"
var ProductOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_operations_total",
		Help:      "Total number of successful product mutations, by operation.",
	},
	[]string{"op"},
)

// OwnershipDenialsTotal counts requests rejected because the caller does not
// own the product.
// Label:
//   - action: "view", "update", "delete"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of product operations denied by the ownership check.",
	},
	[]string{"action"},
)

// ImageCleanupTotal counts background image removals.
// Label:
//   - result: "ok", "error", "dropped"
var ImageCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cleanup_total",
		Help:      "Total number of background image removals, by result.",
	},
	[]string{"result"},
)

// ImageCleanupQueueDepth tracks pending removals in each cleanup worker channel.
var ImageCleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "image_cleanup_queue_depth",
		Help:      "Current number of images pending removal in each worker channel.",
	},
	[]string{"worker_id"},
)
