package models

import "time"

// ActivityTypeUIClick is the activity_type sent by the page tracker.
const ActivityTypeUIClick = "ui_click"

// RetentionStatus represents the retention lifecycle status of a stored activity.
type RetentionStatus string

const (
	RetentionStatusActive   RetentionStatus = "active"
	RetentionStatusArchived RetentionStatus = "archived"
)

// ActivityRecord is the body posted to /api/activity. Field order matches
// the wire contract; Feature and Notes encode as null when unset.
type ActivityRecord struct {
	ActivityType string  `json:"activity_type" example:"ui_click"`
	Feature      *string `json:"feature" example:"listing"`
	Action       string  `json:"action" example:"view_more"`
	Notes        *string `json:"notes" example:"mls=12345"`
	Endpoint     string  `json:"endpoint" example:"/listings"`
} // @name ActivityRecord

// Activity is a stored activity row: the posted record plus what the sink
// learned about the caller.
type Activity struct {
	ID              string          `json:"id" example:"660e8400-e29b-41d4-a716-446655440000"`
	ContactID       *string         `json:"contact_id,omitempty" example:"1042"`
	Email           *string         `json:"email,omitempty" example:"agent@example.com"`
	ActivityType    string          `json:"activity_type" example:"ui_click"`
	Feature         *string         `json:"feature" example:"listing"`
	Action          string          `json:"action" example:"view_more"`
	Notes           *string         `json:"notes" example:"mls=12345"`
	Endpoint        string          `json:"endpoint" example:"/listings"`
	IPAddress       string          `json:"ip_address" example:"203.0.113.7"`
	UserAgent       string          `json:"user_agent" example:"Mozilla/5.0"`
	RetentionStatus RetentionStatus `json:"retention_status" example:"active"`
	CreatedAt       time.Time       `json:"created_at" example:"2025-11-05T10:30:00Z"`
} // @name Activity

// RequestMeta is what the sink knows about the caller of /api/activity.
type RequestMeta struct {
	ContactID string
	Email     string
	IPAddress string
	UserAgent string
	RequestID string
}

// ListActivitiesQuery represents query parameters for listing activities.
type ListActivitiesQuery struct {
	ActivityType    string `form:"activity_type" example:"ui_click"`
	Feature         string `form:"feature" example:"listing"`
	Action          string `form:"action" example:"view_more"`
	ActionPrefix    string `form:"action_prefix" example:"print_flyer"`
	Email           string `form:"email" example:"agent@example.com"`
	RetentionStatus string `form:"retention_status" binding:"omitempty,oneof=active archived" example:"active"`
	Page            int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
} // @name ListActivitiesQuery

// ActivityListResponse represents the response for listing activities.
type ActivityListResponse struct {
	Activities []Activity `json:"activities"`
	Pagination Pagination `json:"pagination"`
} // @name ActivityListResponse

// UserActivitySummary groups activity by email for the admin view.
type UserActivitySummary struct {
	Email         string    `json:"email" example:"agent@example.com"`
	ContactID     *string   `json:"contact_id,omitempty" example:"1042"`
	ActivityCount int64     `json:"activity_count" example:"17"`
	LastActivity  time.Time `json:"last_activity" example:"2025-11-05T10:30:00Z"`
} // @name UserActivitySummary

// ActivityStats counts stored activities by retention status.
type ActivityStats struct {
	Active   int64 `json:"active" example:"45"`
	Archived int64 `json:"archived" example:"1205"`
} // @name ActivityStats

// Pagination contains pagination metadata.
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PageSize     int   `json:"page_size" example:"20"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"100"`
} // @name Pagination
