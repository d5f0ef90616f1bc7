// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes, used as the "outcome" label.
const (
	OutcomeAccepted    = "accepted"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Form submit attempts by form and outcome.",
		}, []string{"form", "outcome"})

	PersistDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "form_persist_duration_seconds",
			Help:    "Latency of the persistence hand-off per form.",
			Buckets: prometheus.DefBuckets,
		}, []string{"form"})

	ThrottledRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_throttled_requests_total",
			Help: "Requests refused by the per-IP limiter.",
		})

	BotRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_bot_requests_total",
			Help: "Public POSTs refused because the user agent is a bot.",
		})

	ModerationDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Job postings approved or rejected by reviewers.",
		}, []string{"status"})

	PendingJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobs_pending",
			Help: "Job postings awaiting moderation.",
		})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "form_sessions_active",
			Help: "Form sessions currently held in memory.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		PersistDuration,
		ThrottledRequestsTotal,
		BotRequestsTotal,
		ModerationDecisionsTotal,
		PendingJobs,
		ActiveSessions,
	)
}
