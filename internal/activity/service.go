package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhima/activity-logger/internal/models"
	"github.com/dhima/activity-logger/pkg/clock"
	platformEvents "github.com/dhima/activity-logger/platform/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service records posted activity and serves it back to the admin views.
type Service struct {
	store     Store
	publisher EventPublisher
	validator *Validator
	logger    *zap.Logger
	clock     clock.Clock
}

// NewService creates a Service using the wall clock. publisher may be nil,
// in which case stored activity is not forwarded to Kafka.
func NewService(store Store, publisher EventPublisher, logger *zap.Logger) (*Service, error) {
	return NewServiceWithClock(store, publisher, logger, clock.RealClock{})
}

// NewServiceWithClock is NewService with an injectable clock.
func NewServiceWithClock(store Store, publisher EventPublisher, logger *zap.Logger, c clock.Clock) (*Service, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:     store,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		clock:     c,
	}, nil
}

// Record validates a posted activity body, stores it with the caller's
// identity and connection details, and publishes it.
//
// A publish failure is logged but not returned: the stored row is the
// record of truth and the caller must never see logging failures.
func (s *Service) Record(ctx context.Context, body []byte, meta models.RequestMeta) (*models.Activity, error) {
	if err := s.validator.Validate(body); err != nil {
		return nil, err
	}

	var record models.ActivityRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, NewValidationError("invalid activity record: %v", err)
	}

	a := &models.Activity{
		ID:              uuid.New().String(),
		ContactID:       optional(meta.ContactID),
		Email:           optional(meta.Email),
		ActivityType:    record.ActivityType,
		Feature:         record.Feature,
		Action:          record.Action,
		Notes:           record.Notes,
		Endpoint:        record.Endpoint,
		IPAddress:       meta.IPAddress,
		UserAgent:       meta.UserAgent,
		RetentionStatus: models.RetentionStatusActive,
		CreatedAt:       s.clock.Now().UTC(),
	}

	if err := s.store.CreateActivity(ctx, a); err != nil {
		s.logger.Error("failed to store activity",
			zap.String("request_id", meta.RequestID),
			zap.String("activity_type", a.ActivityType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store activity: %w", err)
	}

	s.logger.Info("activity recorded",
		zap.String("activity_id", a.ID),
		zap.String("activity_type", a.ActivityType),
		zap.Stringp("feature", a.Feature),
		zap.String("action", a.Action),
		zap.String("endpoint", a.Endpoint),
		zap.String("request_id", meta.RequestID))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, toEvent(a)); err != nil {
			s.logger.Warn("failed to publish activity event",
				zap.String("activity_id", a.ID),
				zap.Error(err))
		}
	}

	return a, nil
}

// Query retrieves stored activity with filtering and pagination.
func (s *Service) Query(ctx context.Context, query models.ListActivitiesQuery) ([]models.Activity, models.Pagination, error) {
	list, total, err := s.store.ListActivities(ctx, query)
	if err != nil {
		s.logger.Error("failed to query activities", zap.Error(err))
		return nil, models.Pagination{}, fmt.Errorf("failed to query activities: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return list, models.Pagination{
		CurrentPage:  page,
		PageSize:     limit,
		TotalPages:   totalPages,
		TotalRecords: total,
	}, nil
}

// Get retrieves a single activity. It returns nil, nil when not found.
func (s *Service) Get(ctx context.Context, id string) (*models.Activity, error) {
	a, err := s.store.GetActivity(ctx, id)
	if err != nil {
		s.logger.Error("failed to get activity", zap.String("activity_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// UserSummaries groups identified activity by email, most recent first.
func (s *Service) UserSummaries(ctx context.Context) ([]models.UserActivitySummary, error) {
	out, err := s.store.ListUserSummaries(ctx)
	if err != nil {
		s.logger.Error("failed to summarise user activity", zap.Error(err))
		return nil, fmt.Errorf("failed to summarise user activity: %w", err)
	}
	return out, nil
}

// Stats counts stored activity by retention status.
func (s *Service) Stats(ctx context.Context) (models.ActivityStats, error) {
	stats, err := s.store.CountActivities(ctx)
	if err != nil {
		return models.ActivityStats{}, fmt.Errorf("failed to count activities: %w", err)
	}
	return stats, nil
}

func toEvent(a *models.Activity) platformEvents.ActivityEvent {
	return platformEvents.ActivityEvent{
		ActivityID:   a.ID,
		ActivityType: a.ActivityType,
		Feature:      a.Feature,
		Action:       a.Action,
		Notes:        a.Notes,
		Endpoint:     a.Endpoint,
		ContactID:    a.ContactID,
		Email:        a.Email,
		OccurredAt:   a.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
