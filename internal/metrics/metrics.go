package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsSent counts individual send attempts by type and outcome.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_notifications_sent_total",
			Help: "Total notification send attempts",
		},
		[]string{"type", "status"},
	)

	// BroadcastRecipients counts recipients reached per broadcast outcome.
	BroadcastRecipients = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_broadcast_recipients_total",
			Help: "Total broadcast recipients by delivery outcome",
		},
		[]string{"outcome"},
	)

	// HTTPRequestDuration observes request latency by method, path and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)
)

// RecordSend increments the send attempt counter.
func RecordSend(notifType, status string) {
	NotificationsSent.WithLabelValues(notifType, status).Inc()
}

// RecordBroadcast increments the broadcast recipient counters.
func RecordBroadcast(successful, failed int) {
	BroadcastRecipients.WithLabelValues("successful").Add(float64(successful))
	BroadcastRecipients.WithLabelValues("failed").Add(float64(failed))
}
