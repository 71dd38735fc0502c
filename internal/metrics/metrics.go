package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess     = "success"
	ResultFailure     = "failure"
	ResultRejected    = "rejected"
	ResultUnreachable = "unreachable"
	ResultNotFound    = "not_found"
)

var (
	// ChallengesTotal counts issued and verified login challenges
	ChallengesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kilt_attester_challenges_total",
			Help: "Total number of session challenges by stage and result",
		},
		[]string{"stage", "result"},
	)

	// LoginsTotal counts completed logins
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kilt_attester_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// SubmissionsTotal counts ledger submissions by network and result
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kilt_attester_submissions_total",
			Help: "Total number of extrinsics submitted to KILT networks",
		},
		[]string{"network", "result"},
	)

	// SubmissionDuration tracks how long submissions wait for inclusion
	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kilt_attester_submission_duration_seconds",
			Help:    "Time from submission to block inclusion in seconds",
			Buckets: []float64{1, 3, 6, 12, 18, 24, 36, 60, 120},
		},
		[]string{"network"},
	)

	// ResolverAttempts counts DID resolution attempts per network
	ResolverAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kilt_attester_resolver_attempts_total",
			Help: "Total number of DID resolution attempts per network",
		},
		[]string{"network", "result"},
	)

	// EventsPublishFailures counts notifications that could not be published
	EventsPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kilt_attester_events_publish_failures_total",
			Help: "Total number of best-effort event publications that failed",
		},
		[]string{"topic"},
	)
)
