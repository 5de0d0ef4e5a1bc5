package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openrelief/aidtrack/internal/models"
	"go.uber.org/zap"
)

// VerificationEngine is the verification-session engine the handlers delegate to
type VerificationEngine interface {
	Start(ctx context.Context, req models.StartVerificationRequest) (*models.VerificationSession, error)
	Complete(ctx context.Context, sessionID, code string) (*models.VerificationSession, error)
	Resend(ctx context.Context, sessionID string) (*models.VerificationSession, error)
}

// VerificationHandler exposes the verification-session protocol over HTTP
type VerificationHandler struct {
	engine VerificationEngine
	logger *zap.Logger
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(engine VerificationEngine, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{engine: engine, logger: logger}
}

// Start godoc
// @Summary Start a verification session
// @Description Issues an OTP code over the requested channel and returns an opaque session id. The code is never returned.
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.StartVerificationRequest true "Channel and identifier"
// @Success 200 {object} StartVerificationResponse
// @Failure 400 {object} ErrorResponse
// @Router /verification/start [post]
func (h *VerificationHandler) Start(c *gin.Context) {
	var req models.StartVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	session, err := h.engine.Start(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartVerificationResponse{
		SessionID: session.ID,
		Channel:   string(session.Channel),
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Message:   "Verification code sent.",
	})
}

// Complete godoc
// @Summary Complete a verification session
// @Description Consumes the OTP code; a session can be completed at most once
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.CompleteVerificationRequest true "Session id and code"
// @Success 200 {object} CompleteVerificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/complete [post]
func (h *VerificationHandler) Complete(c *gin.Context) {
	var req models.CompleteVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	session, err := h.engine.Complete(c.Request.Context(), req.SessionID, req.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompleteVerificationResponse{
		SessionID: session.ID,
		Verified:  true,
		Message:   "Verification completed successfully.",
	})
}

// Resend godoc
// @Summary Resend a verification code
// @Description Issues a fresh code for a pending session; the previous code stops working
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.ResendVerificationRequest true "Session id"
// @Success 200 {object} ResendVerificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/resend [post]
func (h *VerificationHandler) Resend(c *gin.Context) {
	var req models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	session, err := h.engine.Resend(c.Request.Context(), req.SessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResendVerificationResponse{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *VerificationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrSessionCompleted),
		errors.Is(err, models.ErrSessionExpired),
		errors.Is(err, models.ErrInvalidCode),
		errors.Is(err, models.ErrResendLimitExceeded):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("verification operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
