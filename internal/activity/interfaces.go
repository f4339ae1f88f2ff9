package activity

import (
	"context"

	"github.com/dhima/activity-logger/internal/models"
	platformEvents "github.com/dhima/activity-logger/platform/events"
)

// Store defines persistence required by the activity Service.
type Store interface {
	CreateActivity(ctx context.Context, a *models.Activity) error
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	ListActivities(ctx context.Context, query models.ListActivitiesQuery) ([]models.Activity, int64, error)
	ListUserSummaries(ctx context.Context) ([]models.UserActivitySummary, error)
	CountActivities(ctx context.Context) (models.ActivityStats, error)
}

// EventPublisher abstracts the Kafka publisher for testability.
type EventPublisher interface {
	Publish(ctx context.Context, event platformEvents.ActivityEvent) error
}
