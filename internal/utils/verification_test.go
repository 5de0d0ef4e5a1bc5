package utils

import (
	"testing"

	"github.com/openrelief/aidtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		assert.Len(t, code, models.VerificationCodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateVerificationCodeVaries(t *testing.T) {
	// With 10^6 possibilities, 50 draws landing on a single value means the
	// generator is broken, not unlucky.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
