package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openrelief/aidtrack/internal/store"
	"go.uber.org/zap"
)

// HealthHandler reports whether the backing stores are reachable
type HealthHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{store: st, logger: logger}
}

// Check godoc
// @Summary Health check
// @Description Reports whether the service and its backing stores are healthy
// @Tags health
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "dependency unavailable"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
