package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Recommendation engine metrics
	RecommendationsGenerated prometheus.Counter
	RecommendationRowsFailed prometheus.Counter

	// Reminder metrics
	DueReminderScans  prometheus.Counter
	DueRemindersFound prometheus.Gauge

	// Appointment metrics
	AppointmentsBooked    prometheus.Counter
	AppointmentsCancelled prometheus.Counter

	// Broker metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RecommendationsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_generated_total",
			Help:      "Total number of advisory strings generated",
		}),
		RecommendationRowsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_rows_failed_total",
			Help:      "Total number of recommendation rows that failed to persist",
		}),
		DueReminderScans: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "due_reminder_scans_total",
			Help:      "Total number of due-reminder scans performed",
		}),
		DueRemindersFound: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "due_reminders_found",
			Help:      "Number of due reminders found in the last scan",
		}),
		AppointmentsBooked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Total number of appointments booked",
		}),
		AppointmentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_cancelled_total",
			Help:      "Total number of appointments cancelled",
		}),
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events published",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of domain events that failed to publish",
		}, []string{"event_type"}),
	}
}
