package handlers

import (
	"context"
	"time"

	"github.com/dhima/activity-logger/internal/api/response"
	"github.com/dhima/activity-logger/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db     Pinger
	logger logging.Logger
}

// NewHealthHandler creates a new health check handler. db may be nil.
func NewHealthHandler(db Pinger, logger logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Service  string `json:"service" example:"activity-logger"`
	Version  string `json:"version" example:"1.0.0"`
	Database string `json:"database" example:"up"`
} // @name HealthResponse

// Health godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API service and its database
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} response.ErrorResponse "Database unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := HealthResponse{
		Status:   "ok",
		Service:  "activity-logger",
		Version:  "1.0.0",
		Database: "unconfigured",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			status.Status = "degraded"
			status.Database = "down"
			response.ServiceUnavailable(c, "database unreachable", status)
			return
		}
		status.Database = "up"
	}

	response.OK(c, status)
}
