package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/openrelief/aidtrack/internal/models"
)

// GenerateVerificationCode generates a random numeric verification code of
// the canonical length using a cryptographic random source.
func GenerateVerificationCode() (string, error) {
	digits := make([]byte, models.VerificationCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
