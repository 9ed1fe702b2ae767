package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hacktrack_emails_total", Help: "Emails dispatched by notification type and outcome"},
		[]string{"type", "status"},
	)
	RemindersSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hacktrack_reminders_skipped_total", Help: "Reminder candidates skipped by reason"},
		[]string{"reason"},
	)
	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hacktrack_job_runs_total", Help: "Scheduled job invocations by job and result"},
		[]string{"job", "result"},
	)
	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hacktrack_job_duration_seconds",
			Help:    "Scheduled job duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"job"},
	)
)

func Register() {
	prometheus.MustRegister(EmailsTotal, RemindersSkipped, JobRuns, JobDuration)
}
