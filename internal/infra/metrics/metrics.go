package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	leadsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of leads stored",
		},
	)

	generationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Text generation calls by outcome",
		},
		[]string{"outcome"},
	)

	generationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_request_duration_seconds",
			Help:    "Latency of text generation calls",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
	)

	notificationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Delayed notification emails by status",
		},
		[]string{"status"},
	)

	interestConfirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interest_confirmations_total",
			Help: "Leads marked interested, by source",
		},
		[]string{"source"},
	)

	staleNotifications = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stale_notifications",
			Help: "Leads whose notification has been pending longer than the stale threshold",
		},
	)

	inboundReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inbound_replies_total",
			Help: "Inbound webhook messages by result",
		},
		[]string{"result"},
	)
)

func RecordLeadSubmitted() {
	leadsSubmitted.Inc()
}

func RecordGenerationAttempt(outcome string, seconds float64) {
	generationAttempts.WithLabelValues(outcome).Inc()
	generationLatency.Observe(seconds)
}

func RecordNotificationEmail(status string) {
	notificationEmails.WithLabelValues(status).Inc()
}

func RecordInterestConfirmation(source string) {
	interestConfirmations.WithLabelValues(source).Inc()
}

func SetStaleNotifications(n int) {
	staleNotifications.Set(float64(n))
}

func RecordInboundReply(result string) {
	inboundReplies.WithLabelValues(result).Inc()
}
