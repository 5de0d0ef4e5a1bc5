package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openrelief/aidtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeVerificationEngine implements the session protocol in memory
type fakeVerificationEngine struct {
	sessions map[string]*models.VerificationSession
	nextID   int
	nextCode string
	ttl      time.Duration
}

func newFakeVerificationEngine() *fakeVerificationEngine {
	return &fakeVerificationEngine{
		sessions: map[string]*models.VerificationSession{},
		nextCode: "123456",
		ttl:      10 * time.Minute,
	}
}

func (f *fakeVerificationEngine) Start(_ context.Context, req models.StartVerificationRequest) (*models.VerificationSession, error) {
	f.nextID++
	now := time.Now()
	session := &models.VerificationSession{
		ID:         fmt.Sprintf("session-%d", f.nextID),
		Channel:    models.VerificationChannel(req.Channel),
		Identifier: req.Identifier(),
		Code:       f.nextCode,
		Status:     models.VerificationStatusPending,
		ExpiresAt:  now.Add(f.ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeVerificationEngine) Complete(_ context.Context, sessionID, code string) (*models.VerificationSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if session.Status == models.VerificationStatusCompleted {
		return nil, models.ErrSessionCompleted
	}
	if session.Expired(time.Now()) {
		return nil, models.ErrSessionExpired
	}
	if session.Code != code {
		return nil, models.ErrInvalidCode
	}
	session.Status = models.VerificationStatusCompleted
	return session, nil
}

func (f *fakeVerificationEngine) Resend(_ context.Context, sessionID string) (*models.VerificationSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if session.Status == models.VerificationStatusCompleted {
		return nil, models.ErrSessionCompleted
	}
	if session.ResendCount >= models.MaxResendCount {
		return nil, models.ErrResendLimitExceeded
	}
	session.ResendCount++
	session.Code = fmt.Sprintf("%06d", 200000+session.ResendCount)
	session.ExpiresAt = time.Now().Add(f.ttl)
	return session, nil
}

func setupVerificationRouter(engine VerificationEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewVerificationHandler(engine, zap.NewNop())
	r.POST("/v1/verification/start", h.Start)
	r.POST("/v1/verification/complete", h.Complete)
	r.POST("/v1/verification/resend", h.Resend)
	return r
}

func TestStartVerification(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	w := doJSON(t, r, "POST", "/v1/verification/start",
		`{"channel":"email","email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StartVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "email", resp.Channel)
	assert.NotEmpty(t, resp.ExpiresAt)
	assert.NotEmpty(t, resp.Message)

	// The code must never appear in the response
	assert.NotContains(t, w.Body.String(), "123456")
}

func TestStartVerification_Phone(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	w := doJSON(t, r, "POST", "/v1/verification/start",
		`{"channel":"phone","phone":"+15551234567"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StartVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "phone", resp.Channel)
}

func TestStartVerification_Validation(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	tests := []struct {
		name string
		body string
	}{
		{"missing channel", `{"email":"user@example.com"}`},
		{"invalid channel", `{"channel":"sms","email":"a@b.com"}`},
		{"missing email for email channel", `{"channel":"email"}`},
		{"invalid email", `{"channel":"email","email":"not-an-email"}`},
		{"missing phone for phone channel", `{"channel":"phone"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, "POST", "/v1/verification/start", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCompleteVerification_CodeValidation(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	tests := []struct {
		name string
		body string
	}{
		{"missing sessionId", `{"code":"123456"}`},
		{"missing code", `{"sessionId":"s"}`},
		{"code with letters", `{"sessionId":"s","code":"12a456"}`},
		{"code too short", `{"sessionId":"s","code":"123"}`},
		{"code too long", `{"sessionId":"s","code":"123456789"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, "POST", "/v1/verification/complete", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVerificationFlow(t *testing.T) {
	engine := newFakeVerificationEngine()
	r := setupVerificationRouter(engine)

	w := doJSON(t, r, "POST", "/v1/verification/start",
		`{"channel":"email","email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var started StartVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	// Wrong code is rejected
	w = doJSON(t, r, "POST", "/v1/verification/complete",
		`{"sessionId":"`+started.SessionID+`","code":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Correct code completes the session
	w = doJSON(t, r, "POST", "/v1/verification/complete",
		`{"sessionId":"`+started.SessionID+`","code":"123456"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var completed CompleteVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	assert.Equal(t, started.SessionID, completed.SessionID)
	assert.True(t, completed.Verified)

	// Same correct code again fails: the session is consumed
	w = doJSON(t, r, "POST", "/v1/verification/complete",
		`{"sessionId":"`+started.SessionID+`","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteVerification_UnknownSession(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	w := doJSON(t, r, "POST", "/v1/verification/complete",
		`{"sessionId":"missing","code":"123456"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResendVerification(t *testing.T) {
	engine := newFakeVerificationEngine()
	r := setupVerificationRouter(engine)

	w := doJSON(t, r, "POST", "/v1/verification/start",
		`{"channel":"email","email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var started StartVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	w = doJSON(t, r, "POST", "/v1/verification/resend",
		`{"sessionId":"`+started.SessionID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resent ResendVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resent))
	assert.Equal(t, started.SessionID, resent.SessionID)
	assert.NotEmpty(t, resent.ExpiresAt)

	// The old code no longer completes the session
	w = doJSON(t, r, "POST", "/v1/verification/complete",
		`{"sessionId":"`+started.SessionID+`","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerification_LimitExceeded(t *testing.T) {
	engine := newFakeVerificationEngine()
	r := setupVerificationRouter(engine)

	w := doJSON(t, r, "POST", "/v1/verification/start",
		`{"channel":"email","email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var started StartVerificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	body := `{"sessionId":"` + started.SessionID + `"}`
	for i := 0; i < models.MaxResendCount; i++ {
		w = doJSON(t, r, "POST", "/v1/verification/resend", body)
		require.Equal(t, http.StatusOK, w.Code, "resend %d", i+1)
	}

	w = doJSON(t, r, "POST", "/v1/verification/resend", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "resend limit exceeded")
}

func TestResendVerification_UnknownSession(t *testing.T) {
	r := setupVerificationRouter(newFakeVerificationEngine())

	w := doJSON(t, r, "POST", "/v1/verification/resend", `{"sessionId":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
