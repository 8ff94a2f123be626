package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	BookingsRejected  *prometheus.CounterVec

	SessionsCreated   prometheus.Counter
	SessionsCancelled prometheus.Counter
	SessionsGenerated prometheus.Counter

	NotificationsDispatched *prometheus.CounterVec
	NotificationsSent       prometheus.Counter
	NotificationsFailed     prometheus.Counter
	NotificationAttempts    prometheus.Histogram

	RemindersScheduled prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_bookings_created_total",
			Help: "Total number of bookings confirmed",
		}),
		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_bookings_cancelled_total",
			Help: "Total number of bookings cancelled by members",
		}),
		BookingsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "turnero_bookings_rejected_total",
			Help: "Total number of booking attempts rejected, by reason",
		}, []string{"reason"}),
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_sessions_created_total",
			Help: "Total number of sessions created directly",
		}),
		SessionsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_sessions_cancelled_total",
			Help: "Total number of sessions cancelled",
		}),
		SessionsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_sessions_generated_total",
			Help: "Total number of sessions created by the slot generator",
		}),
		NotificationsDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "turnero_notifications_dispatched_total",
			Help: "Total number of events accepted for delivery, by event type",
		}, []string{"event_type"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_notifications_sent_total",
			Help: "Total number of notifications delivered to the webhook",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_notifications_failed_total",
			Help: "Total number of notifications given up on after retries",
		}),
		NotificationAttempts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "turnero_notification_attempts",
			Help:    "Delivery attempts used per notification",
			Buckets: prometheus.LinearBuckets(1, 1, 5),
		}),
		RemindersScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "turnero_reminders_scheduled_total",
			Help: "Total number of reminder events produced by the sweep",
		}),
	}
}
