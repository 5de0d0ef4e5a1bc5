// Package notifier delivers OTP codes to users over email or phone.
// Delivery is best-effort: the verification engine dispatches asynchronously
// and treats failures as non-fatal.
package notifier

import (
	"context"
	"strings"

	"github.com/openrelief/aidtrack/internal/models"
	"go.uber.org/zap"
)

// Dispatcher sends a verification code to a recipient on a given channel
type Dispatcher interface {
	Send(ctx context.Context, channel models.VerificationChannel, recipient, code string) error
}

// LogDispatcher logs dispatches instead of sending them. Used in development
// and as the fallback when no gateway is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher creates a log-only dispatcher
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Send logs the dispatch with the recipient masked
func (d *LogDispatcher) Send(_ context.Context, channel models.VerificationChannel, recipient, _ string) error {
	d.logger.Info("verification code dispatched",
		zap.String("channel", string(channel)),
		zap.String("recipient", maskRecipient(recipient)),
	)
	return nil
}

// maskRecipient hides the middle of an identifier so logs never carry a full
// email address or phone number
func maskRecipient(recipient string) string {
	if len(recipient) <= 4 {
		return strings.Repeat("*", len(recipient))
	}
	return recipient[:2] + strings.Repeat("*", len(recipient)-4) + recipient[len(recipient)-2:]
}
