package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "aidtrack_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ClaimTransitions tracks claim lifecycle transition attempts
	ClaimTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aidtrack_claim_transitions_total",
			Help: "Number of claim lifecycle transition attempts",
		},
		[]string{"target", "outcome"},
	)

	// VerificationOperations tracks verification session operations
	VerificationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aidtrack_verification_operations_total",
			Help: "Number of verification session operations",
		},
		[]string{"operation", "outcome"},
	)

	// NotifierDispatches tracks OTP dispatch attempts to the notification gateway
	NotifierDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aidtrack_notifier_dispatches_total",
			Help: "Number of OTP code dispatch attempts",
		},
		[]string{"channel", "status"},
	)

	// AuditDropped tracks audit entries dropped because the buffer was full
	AuditDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aidtrack_audit_dropped_total",
			Help: "Number of audit entries dropped due to a full buffer",
		},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aidtrack_active_connections",
			Help: "Number of active connections",
		},
	)
)
