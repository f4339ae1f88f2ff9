package handlers

import (
	"context"

	"github.com/dhima/activity-logger/internal/api/response"
	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsProvider supplies stored activity counts.
type StatsProvider interface {
	Stats(ctx context.Context) (models.ActivityStats, error)
}

// MetricsHandler handles metrics requests.
type MetricsHandler struct {
	stats  StatsProvider
	logger logging.Logger
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(stats StatsProvider, logger logging.Logger) *MetricsHandler {
	return &MetricsHandler{stats: stats, logger: logger}
}

// MetricsResponse represents the metrics response.
type MetricsResponse struct {
	ActivitiesTotal    int64 `json:"activities_total" example:"1250"`
	ActivitiesActive   int64 `json:"activities_active" example:"45"`
	ActivitiesArchived int64 `json:"activities_archived" example:"1205"`
} // @name MetricsResponse

// Metrics godoc
// @Summary Get activity metrics
// @Description Returns stored activity counts by retention status
// @Tags System
// @Produce json
// @Success 200 {object} MetricsResponse
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to collect metrics", zap.Error(err))
		response.InternalServerError(c, "failed to collect metrics")
		return
	}

	response.OK(c, MetricsResponse{
		ActivitiesTotal:    stats.Active + stats.Archived,
		ActivitiesActive:   stats.Active,
		ActivitiesArchived: stats.Archived,
	})
}
