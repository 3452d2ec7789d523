// Package metrics defines the custom Prometheus metrics of the Chouchef API.
// All metrics are registered on the default registry at package init through
// promauto and exposed by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chouchef"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests refused by the auth middleware.
// Label:
//   - reason: "missing_token", "invalid_token" or "revoked"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for missing or invalid credentials.",
	},
	[]string{"reason"},
)

// ── Shopping list metrics ─────────────────────────────────────────────────────

// ShopMutationsTotal counts successful list mutations.
// Label:
//   - operation: "create", "update", "delete", "add_foods", "set_checked", "remove_food"
var ShopMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shop_mutations_total",
		Help:      "Total number of successful shopping list mutations, by operation.",
	},
	[]string{"operation"},
)

// ShopVersionConflictsTotal counts conditional list updates that lost a race.
var ShopVersionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shop_version_conflicts_total",
		Help:      "Total number of list updates rejected because the version changed.",
	},
)

// ── Media and mail metrics ────────────────────────────────────────────────────

// TextDetectionsTotal counts OCR requests.
// Label:
//   - result: "success" or "failure"
var TextDetectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "text_detections_total",
		Help:      "Total number of text detection requests, by result.",
	},
	[]string{"result"},
)

// TextDetectionDuration measures the time spent waiting on the OCR backend.
var TextDetectionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "text_detection_duration_seconds",
		Help:      "Duration of text detection calls.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16},
	},
)

// ImagesUploadedTotal counts stored uploads.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images stored.",
	},
)

// MailsSentTotal counts contact mails.
// Label:
//   - result: "success" or "failure"
var MailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_sent_total",
		Help:      "Total number of contact mails, by delivery result.",
	},
	[]string{"result"},
)

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
