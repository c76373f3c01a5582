package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorloop_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// BookingRequests counts reservation attempts and their outcome (created|conflict|error).
	BookingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorloop_booking_requests_total",
			Help: "Total number of slot reservation attempts",
		},
		[]string{"result"},
	)

	// BookingDecisions counts mentor decisions by outcome (approved|declined).
	BookingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorloop_booking_decisions_total",
			Help: "Total number of request decisions",
		},
		[]string{"outcome"},
	)

	// SessionsCompleted tracks sessions flipped to completed by the sweep.
	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorloop_sessions_completed_total",
			Help: "Number of sessions marked completed by the background sweep",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorloop_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
