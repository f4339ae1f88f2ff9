package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dhima/activity-logger/internal/activity"
	"github.com/dhima/activity-logger/internal/api/middleware"
	"github.com/dhima/activity-logger/internal/api/response"
	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxActivityBody caps a posted record; real records are a few hundred bytes.
const maxActivityBody = 64 << 10

// ActivityService is the activity behaviour the handler depends on.
type ActivityService interface {
	Record(ctx context.Context, body []byte, meta models.RequestMeta) (*models.Activity, error)
	Query(ctx context.Context, query models.ListActivitiesQuery) ([]models.Activity, models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
	UserSummaries(ctx context.Context) ([]models.UserActivitySummary, error)
}

// ActivityHandler serves the activity intake and admin read endpoints.
type ActivityHandler struct {
	service ActivityService
	logger  logging.Logger
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(service ActivityService, logger logging.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With(zap.String("handler", "activity")),
	}
}

// RecordActivity godoc
// @Summary Record a UI activity
// @Description Accepts an activity record posted by the page tracker. The caller's contact id and email (from the session layer), IP address and user agent are attached server-side.
// @Tags Activity
// @Accept json
// @Produce json
// @Param record body models.ActivityRecord true "Activity record"
// @Success 202 {object} response.SuccessResponse{data=map[string]string} "Activity accepted"
// @Failure 400 {object} response.ErrorResponse "Record failed validation"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/activity [post]
func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxActivityBody)
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("unreadable activity body",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid activity body", err.Error())
		return
	}

	meta := models.RequestMeta{
		ContactID: c.GetString(middleware.ContactIDKey),
		Email:     c.GetString(middleware.ContactEmailKey),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: response.GetRequestID(c),
	}

	a, err := h.service.Record(c.Request.Context(), body, meta)
	if err != nil {
		var verr activity.ValidationError
		if errors.As(err, &verr) {
			h.logger.Warn("activity record rejected",
				zap.Error(err),
				zap.String("request_id", meta.RequestID),
			)
			response.BadRequest(c, "invalid activity record", verr.Details)
			return
		}
		response.InternalServerError(c, "failed to record activity")
		return
	}

	response.Accepted(c, gin.H{"id": a.ID}, "activity recorded")
}

// ListActivities godoc
// @Summary List recorded activity
// @Description Retrieves stored activity, newest first, with filtering and pagination. Defaults to active (not archived) rows.
// @Tags Activity
// @Produce json
// @Param activity_type query string false "Filter by activity type"
// @Param feature query string false "Filter by feature"
// @Param action query string false "Filter by action"
// @Param action_prefix query string false "Filter by action prefix, e.g. print_flyer"
// @Param email query string false "Filter by caller email"
// @Param retention_status query string false "Filter by retention status" Enums(active, archived) default(active)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} models.ActivityListResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/activity [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var query models.ListActivitiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("invalid list activities query",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.RetentionStatus == "" {
		query.RetentionStatus = string(models.RetentionStatusActive)
	}

	list, pagination, err := h.service.Query(c.Request.Context(), query)
	if err != nil {
		response.InternalServerError(c, "failed to list activities")
		return
	}

	response.OK(c, models.ActivityListResponse{
		Activities: list,
		Pagination: pagination,
	})
}

// GetActivity godoc
// @Summary Get a recorded activity
// @Tags Activity
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} models.Activity
// @Failure 404 {object} response.ErrorResponse "Activity not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/activity/{id} [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id := c.Param("id")

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "failed to get activity")
		return
	}
	if a == nil {
		response.NotFound(c, "activity not found")
		return
	}

	response.OK(c, a)
}

// ListUserActivity godoc
// @Summary Activity grouped by user
// @Description Identified activity grouped by email with counts and the most recent activity time, most recently active first.
// @Tags Activity
// @Produce json
// @Success 200 {array} models.UserActivitySummary
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/activity/users [get]
func (h *ActivityHandler) ListUserActivity(c *gin.Context) {
	out, err := h.service.UserSummaries(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to summarise user activity")
		return
	}
	response.OK(c, out)
}
