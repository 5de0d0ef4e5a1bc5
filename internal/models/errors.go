package models

import (
	"errors"
	"fmt"
)

// Error constants for claim and verification operations
var (
	ErrAmountRequired      = errors.New("amount is required")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrClaimNotFound       = errors.New("claim not found")
	ErrSessionNotFound     = errors.New("verification session not found")
	ErrSessionCompleted    = errors.New("verification session already completed")
	ErrSessionExpired      = errors.New("verification session expired")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrResendLimitExceeded = errors.New("resend limit exceeded")
)

// InvalidTransitionError reports a claim lifecycle transition attempted out of order
type InvalidTransitionError struct {
	Current ClaimStatus
	Target  ClaimStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Target)
}
