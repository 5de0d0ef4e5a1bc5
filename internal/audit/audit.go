// Package audit provides a pluggable sink for audit events emitted by the
// claim and verification engines. Emission is best-effort: a sink never
// fails the operation that produced the event.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Audit actions
const (
	ActionCreate     = "CREATE"
	ActionTransition = "TRANSITION"
	ActionStart      = "START"
	ActionComplete   = "COMPLETE"
	ActionResend     = "RESEND"
)

// Audit resources
const (
	ResourceClaim               = "claim"
	ResourceVerificationSession = "verification_session"
)

// Entry represents a single audit event
type Entry struct {
	Action     string            `bson:"action" json:"action"`
	Resource   string            `bson:"resource" json:"resource"`
	ResourceID string            `bson:"resource_id" json:"resource_id"`
	Message    string            `bson:"message" json:"message"`
	Metadata   map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp  time.Time         `bson:"timestamp" json:"timestamp"`
}

// Sink records audit entries. Implementations must not block the caller and
// must swallow their own failures.
type Sink interface {
	Record(ctx context.Context, e Entry)
}

// ZapSink writes audit entries to the structured log
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates an audit sink backed by the given logger
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Record logs the entry
func (s *ZapSink) Record(_ context.Context, e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	s.logger.Info("audit",
		zap.String("action", e.Action),
		zap.String("resource", e.Resource),
		zap.String("resource_id", e.ResourceID),
		zap.String("message", e.Message),
		zap.Time("timestamp", e.Timestamp),
	)
}

// NopSink discards all entries. Used in tests.
type NopSink struct{}

// Record discards the entry
func (NopSink) Record(context.Context, Entry) {}
