package models

import (
	"time"
)

// VerificationChannel is the communication channel an OTP code is sent over
type VerificationChannel string

const (
	VerificationChannelEmail VerificationChannel = "email"
	VerificationChannelPhone VerificationChannel = "phone"
)

// VerificationStatus represents the stored state of a verification session.
// "expired" is not a stored status; it is derived from expires_at at check time.
type VerificationStatus string

const (
	VerificationStatusPending   VerificationStatus = "pending"
	VerificationStatusCompleted VerificationStatus = "completed"
)

// Constants for verification configuration
const (
	VerificationCodeLength = 6
	MaxResendCount         = 3
)

// VerificationSession tracks an OTP challenge issued to a user via email or phone.
// The code and identifier are never serialized into API responses.
type VerificationSession struct {
	ID          string              `bson:"_id" json:"sessionId"`
	Channel     VerificationChannel `bson:"channel" json:"channel"`
	Identifier  string              `bson:"identifier" json:"-"`
	Code        string              `bson:"code" json:"-"`
	Status      VerificationStatus  `bson:"status" json:"status"`
	ResendCount int                 `bson:"resend_count" json:"-"`
	ExpiresAt   time.Time           `bson:"expires_at" json:"expiresAt"`
	CreatedAt   time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updatedAt"`
}

// Expired reports whether the session's code is past its TTL at the given instant
func (s *VerificationSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// StartVerificationRequest represents the request body for starting a verification session
type StartVerificationRequest struct {
	Channel string `json:"channel" binding:"required,oneof=email phone"`
	Email   string `json:"email" binding:"required_if=Channel email,omitempty,email"`
	Phone   string `json:"phone" binding:"required_if=Channel phone"`
}

// Identifier returns the channel-appropriate identifier from the request
func (r *StartVerificationRequest) Identifier() string {
	if r.Channel == string(VerificationChannelEmail) {
		return r.Email
	}
	return r.Phone
}

// CompleteVerificationRequest represents the request body for completing a verification session
type CompleteVerificationRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Code      string `json:"code" binding:"required,number,min=4,max=8"`
}

// ResendVerificationRequest represents the request body for resending a verification code
type ResendVerificationRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}
