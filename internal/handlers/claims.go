package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openrelief/aidtrack/internal/models"
	"go.uber.org/zap"
)

// ClaimEngine is the claim lifecycle engine the handlers delegate to
type ClaimEngine interface {
	Create(ctx context.Context, req models.CreateClaimRequest) (*models.Claim, error)
	FindAll(ctx context.Context) ([]models.Claim, error)
	FindOne(ctx context.Context, id string) (*models.Claim, error)
	Verify(ctx context.Context, id string) (*models.Claim, error)
	Approve(ctx context.Context, id string) (*models.Claim, error)
	Disburse(ctx context.Context, id string) (*models.Claim, error)
	Archive(ctx context.Context, id string) (*models.Claim, error)
}

// ClaimHandler exposes the claim lifecycle over HTTP
type ClaimHandler struct {
	engine ClaimEngine
	logger *zap.Logger
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(engine ClaimEngine, logger *zap.Logger) *ClaimHandler {
	return &ClaimHandler{engine: engine, logger: logger}
}

// Create godoc
// @Summary Create a new claim
// @Description Files a claim against an existing campaign; the claim starts in requested status
// @Tags claims
// @Accept json
// @Produce json
// @Param data body models.CreateClaimRequest true "Claim to create"
// @Success 201 {object} models.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req models.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	claim, err := h.engine.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claim)
}

// List godoc
// @Summary List all claims
// @Tags claims
// @Produce json
// @Success 200 {array} models.Claim
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	claims, err := h.engine.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// Get godoc
// @Summary Get a claim by ID
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} models.Claim
// @Failure 404 {object} ErrorResponse
// @Router /claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.engine.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

// Verify godoc
// @Summary Verify a claim (requested -> verified)
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} models.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims/{id}/verify [post]
func (h *ClaimHandler) Verify(c *gin.Context) {
	h.transition(c, h.engine.Verify)
}

// Approve godoc
// @Summary Approve a claim (verified -> approved)
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} models.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims/{id}/approve [post]
func (h *ClaimHandler) Approve(c *gin.Context) {
	h.transition(c, h.engine.Approve)
}

// Disburse godoc
// @Summary Disburse a claim (approved -> disbursed)
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} models.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims/{id}/disburse [post]
func (h *ClaimHandler) Disburse(c *gin.Context) {
	h.transition(c, h.engine.Disburse)
}

// Archive godoc
// @Summary Archive a claim (disbursed -> archived)
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} models.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims/{id}/archive [patch]
func (h *ClaimHandler) Archive(c *gin.Context) {
	h.transition(c, h.engine.Archive)
}

func (h *ClaimHandler) transition(c *gin.Context, op func(context.Context, string) (*models.Claim, error)) {
	claim, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *ClaimHandler) respondError(c *gin.Context, err error) {
	var invalid *models.InvalidTransitionError
	switch {
	case errors.Is(err, models.ErrClaimNotFound), errors.Is(err, models.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrAmountRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalid.Error()})
	default:
		h.logger.Error("claim operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
