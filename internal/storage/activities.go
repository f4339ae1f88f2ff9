package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhima/activity-logger/internal/models"
)

const activityColumns = `id, contact_id, email, activity_type, feature, action, notes,
		       endpoint, ip_address, user_agent, retention_status, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateActivity inserts a new activity row.
func (c *MySQLClient) CreateActivity(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (
			id, contact_id, email, activity_type, feature, action, notes,
			endpoint, ip_address, user_agent, retention_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.ExecContext(ctx, query,
		a.ID,
		a.ContactID,
		a.Email,
		a.ActivityType,
		a.Feature,
		a.Action,
		a.Notes,
		a.Endpoint,
		a.IPAddress,
		a.UserAgent,
		a.RetentionStatus,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetActivity retrieves a single activity by ID. It returns nil, nil when
// no row matches.
func (c *MySQLClient) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`

	a, err := scanActivity(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// ListActivities retrieves activities with filtering and pagination, newest
// first. It also returns the total number of matching rows.
func (c *MySQLClient) ListActivities(ctx context.Context, q models.ListActivitiesQuery) ([]models.Activity, int64, error) {
	whereClauses := []string{"retention_status = ?"}
	retention := q.RetentionStatus
	if retention == "" {
		retention = string(models.RetentionStatusActive)
	}
	args := []any{retention}

	for _, f := range []struct {
		column string
		value  string
	}{
		{"activity_type", q.ActivityType},
		{"feature", q.Feature},
		{"action", q.Action},
		{"email", q.Email},
	} {
		if f.value != "" {
			whereClauses = append(whereClauses, f.column+" = ?")
			args = append(args, f.value)
		}
	}
	if q.ActionPrefix != "" {
		whereClauses = append(whereClauses, `action LIKE ? ESCAPE '!'`)
		args = append(args, likePrefix(q.ActionPrefix))
	}
	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM activities %s", whereClause)
	if err := c.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	page, limit := normalizePage(q.Page, q.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM activities
		%s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, activityColumns, whereClause)
	args = append(args, limit, (page-1)*limit)

	rows, err := c.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activities: %w", err)
	}
	return out, total, nil
}

// ListUserSummaries groups identified activity by email, most recently
// active first.
func (c *MySQLClient) ListUserSummaries(ctx context.Context) ([]models.UserActivitySummary, error) {
	query := `
		SELECT email, MAX(contact_id), COUNT(*), MAX(created_at)
		FROM activities
		WHERE email IS NOT NULL AND email <> ''
		GROUP BY email
		ORDER BY MAX(created_at) DESC
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise activity by user: %w", err)
	}
	defer rows.Close()

	out := []models.UserActivitySummary{}
	for rows.Next() {
		var s models.UserActivitySummary
		var contactID sql.NullString
		if err := rows.Scan(&s.Email, &contactID, &s.ActivityCount, &s.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		s.ContactID = nullable(contactID)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user summaries: %w", err)
	}
	return out, nil
}

// CountActivities returns row counts per retention status.
func (c *MySQLClient) CountActivities(ctx context.Context) (models.ActivityStats, error) {
	var stats models.ActivityStats
	rows, err := c.db.QueryContext(ctx, `SELECT retention_status, COUNT(*) FROM activities GROUP BY retention_status`)
	if err != nil {
		return stats, fmt.Errorf("failed to count activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return stats, fmt.Errorf("failed to scan activity count: %w", err)
		}
		switch models.RetentionStatus(status) {
		case models.RetentionStatusActive:
			stats.Active = n
		case models.RetentionStatusArchived:
			stats.Archived = n
		}
	}
	return stats, rows.Err()
}

// ArchiveActivitiesBefore moves active rows created before cutoff to archived.
func (c *MySQLClient) ArchiveActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`UPDATE activities SET retention_status = ? WHERE retention_status = ? AND created_at < ?`,
		models.RetentionStatusArchived, models.RetentionStatusActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive activities: %w", err)
	}
	return res.RowsAffected()
}

// PurgeArchivedBefore deletes archived rows created before cutoff.
func (c *MySQLClient) PurgeArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM activities WHERE retention_status = ? AND created_at < ?`,
		models.RetentionStatusArchived, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activities: %w", err)
	}
	return res.RowsAffected()
}

func scanActivity(row rowScanner) (*models.Activity, error) {
	var a models.Activity
	var contactID, email, feature, notes sql.NullString
	var retention string

	err := row.Scan(
		&a.ID,
		&contactID,
		&email,
		&a.ActivityType,
		&feature,
		&a.Action,
		&notes,
		&a.Endpoint,
		&a.IPAddress,
		&a.UserAgent,
		&retention,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ContactID = nullable(contactID)
	a.Email = nullable(email)
	a.Feature = nullable(feature)
	a.Notes = nullable(notes)
	a.RetentionStatus = models.RetentionStatus(retention)
	return &a, nil
}

// likePrefix escapes LIKE wildcards in prefix (escape character '!') and
// appends the trailing match-anything.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// normalizePage clamps page to >= 1 and limit to 1..100 (default 20).
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
