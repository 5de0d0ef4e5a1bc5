package handlers

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// StartVerificationResponse is returned when a verification session is
// started. The code itself is never returned.
type StartVerificationResponse struct {
	SessionID string `json:"sessionId"`
	Channel   string `json:"channel"`
	ExpiresAt string `json:"expiresAt"`
	Message   string `json:"message"`
}

// CompleteVerificationResponse is returned when a code is consumed successfully
type CompleteVerificationResponse struct {
	SessionID string `json:"sessionId"`
	Verified  bool   `json:"verified"`
	Message   string `json:"message"`
}

// ResendVerificationResponse is returned when a fresh code is issued
type ResendVerificationResponse struct {
	SessionID string `json:"sessionId"`
	ExpiresAt string `json:"expiresAt"`
}
