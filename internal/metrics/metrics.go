package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcilePassesTotal counts reconciliation passes per config entry.
	ReconcilePassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_reconcile_passes_total",
			Help: "Reconciliation passes executed after coordinator refreshes",
		},
		[]string{"entry", "result"},
	)

	// DevicesAddedTotal counts devices materialized from camera descriptors.
	DevicesAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_devices_added_total",
			Help: "Devices created for newly discovered cameras",
		},
		[]string{"entry"},
	)

	// DevicesRemovedTotal counts devices removed for disappeared cameras.
	DevicesRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_devices_removed_total",
			Help: "Devices removed for cameras gone from the directory",
		},
		[]string{"entry"},
	)

	// WebhookWritesTotal counts camera config write-backs triggered by
	// webhook provisioning.
	WebhookWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_webhook_writes_total",
			Help: "Remote camera config writes performed to provision webhooks",
		},
		[]string{"entry", "result"},
	)

	// EventsReceivedTotal counts inbound webhook calls by outcome.
	EventsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_events_received_total",
			Help: "Inbound webhook calls by event type and HTTP outcome",
		},
		[]string{"event", "status"},
	)

	// MediaBrowsesTotal counts media source browse and resolve requests.
	MediaBrowsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motioneye_media_requests_total",
			Help: "Media source browse/resolve requests",
		},
		[]string{"op"},
	)
)

func RecordReconcile(entry, result string) {
	ReconcilePassesTotal.WithLabelValues(entry, result).Inc()
}

func RecordDeviceAdded(entry string) {
	DevicesAddedTotal.WithLabelValues(entry).Inc()
}

func RecordDeviceRemoved(entry string) {
	DevicesRemovedTotal.WithLabelValues(entry).Inc()
}

func RecordWebhookWrite(entry, result string) {
	WebhookWritesTotal.WithLabelValues(entry, result).Inc()
}

func RecordEvent(event, status string) {
	EventsReceivedTotal.WithLabelValues(event, status).Inc()
}

func RecordMediaRequest(op string) {
	MediaBrowsesTotal.WithLabelValues(op).Inc()
}
