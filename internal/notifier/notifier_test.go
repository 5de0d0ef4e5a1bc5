package notifier

import (
	"context"
	"testing"

	"github.com/openrelief/aidtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMaskRecipient(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"user@example.com", "us************om"},
		{"+15551234567", "+1********67"},
		{"abcd", "****"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, maskRecipient(tt.in), "input %q", tt.in)
	}
}

func TestLogDispatcherSend(t *testing.T) {
	d := NewLogDispatcher(zap.NewNop())
	err := d.Send(context.Background(), models.VerificationChannelEmail, "user@example.com", "123456")
	assert.NoError(t, err)
}
