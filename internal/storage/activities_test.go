package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dhima/activity-logger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "contact_id", "email", "activity_type", "feature", "action", "notes",
	"endpoint", "ip_address", "user_agent", "retention_status", "created_at",
}

func newMock(t *testing.T) (*MySQLClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMySQLClient(db), mock
}

func strp(s string) *string { return &s }

func TestCreateActivity_WhenInsertSucceeds_ThenPassesAllColumns(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	a := &models.Activity{
		ID:              "a-1",
		Email:           strp("agent@example.com"),
		ActivityType:    models.ActivityTypeUIClick,
		Feature:         strp("listing"),
		Action:          "view_more",
		Endpoint:        "/listings",
		IPAddress:       "203.0.113.7",
		UserAgent:       "test-agent",
		RetentionStatus: models.RetentionStatusActive,
		CreatedAt:       created,
	}
	mock.ExpectExec("INSERT INTO activities").
		WithArgs("a-1", nil, "agent@example.com", "ui_click", "listing", "view_more", nil,
			"/listings", "203.0.113.7", "test-agent", "active", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := client.CreateActivity(context.Background(), a)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateActivity_WhenInsertFails_ThenWrapsError(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectExec("INSERT INTO activities").WillReturnError(assert.AnError)

	// Act
	err := client.CreateActivity(context.Background(), &models.Activity{ID: "x"})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to create activity")
}

func TestGetActivity_WhenRowExists_ThenMapsNullableColumns(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM activities WHERE id = ?").
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a-1", nil, "agent@example.com", "ui_click", nil, "click", "mls=1",
			"/", "203.0.113.7", "ua", "active", created))

	// Act
	a, err := client.GetActivity(context.Background(), "a-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Nil(t, a.ContactID)
	assert.Nil(t, a.Feature)
	require.NotNil(t, a.Email)
	assert.Equal(t, "agent@example.com", *a.Email)
	require.NotNil(t, a.Notes)
	assert.Equal(t, "mls=1", *a.Notes)
	assert.Equal(t, models.RetentionStatusActive, a.RetentionStatus)
	assert.True(t, created.Equal(a.CreatedAt))
}

func TestGetActivity_WhenNoRow_ThenReturnsNilWithoutError(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM activities WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	// Act
	a, err := client.GetActivity(context.Background(), "missing")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestListActivities_WhenFiltersGiven_ThenBuildsWhereAndPaginates(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activities WHERE retention_status = \? AND feature = \? AND email = \?`).
		WithArgs("active", "listing", "agent@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY created_at DESC\s+LIMIT \? OFFSET \?`).
		WithArgs("active", "listing", "agent@example.com", 2, 2).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a-3", "7", "agent@example.com", "ui_click", "listing", "click", nil,
			"/listings", "", "", "active", created))

	// Act
	list, total, err := client.ListActivities(context.Background(), models.ListActivitiesQuery{
		Feature: "listing",
		Email:   "agent@example.com",
		Page:    2,
		Limit:   2,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 1)
	assert.Equal(t, "a-3", list[0].ID)
	require.NotNil(t, list[0].ContactID)
	assert.Equal(t, "7", *list[0].ContactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActivities_WhenActionPrefixGiven_ThenMatchesEscapedLike(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activities WHERE retention_status = \? AND action LIKE \? ESCAPE '!'`).
		WithArgs("active", "print!_flyer%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`action LIKE \? ESCAPE '!'\s+ORDER BY created_at DESC`).
		WithArgs("active", "print!_flyer%", 20, 0).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"a-1", nil, nil, "ui_click", "listing", "print_flyer_color", "mls=1",
			"/listings", "", "", "active", created))

	// Act
	list, total, err := client.ListActivities(context.Background(), models.ListActivitiesQuery{
		ActionPrefix: "print_flyer",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "print_flyer_color", list[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePrefix_WhenWildcardsPresent_ThenEscapesThem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"print_flyer", "print!_flyer%"},
		{"100%", "100!%%"},
		{"a!b", "a!!b%"},
		{"plain", "plain%"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePrefix(tt.in))
		})
	}
}

func TestListUserSummaries_WhenRowsReturned_ThenMapsSummaries(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	last := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("GROUP BY email").
		WillReturnRows(sqlmock.NewRows([]string{"email", "contact_id", "count", "last"}).
			AddRow("b@example.com", "2", 5, last).
			AddRow("a@example.com", nil, 1, last.Add(-time.Hour)))

	// Act
	out, err := client.ListUserSummaries(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b@example.com", out[0].Email)
	assert.Equal(t, int64(5), out[0].ActivityCount)
	assert.Nil(t, out[1].ContactID)
}

func TestCountActivities_WhenGrouped_ThenFillsStats(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectQuery("GROUP BY retention_status").
		WillReturnRows(sqlmock.NewRows([]string{"retention_status", "count"}).
			AddRow("active", 4).
			AddRow("archived", 9))

	// Act
	stats, err := client.CountActivities(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ActivityStats{Active: 4, Archived: 9}, stats)
}

func TestArchiveActivitiesBefore_WhenRowsMatch_ThenReturnsAffected(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE activities SET retention_status").
		WithArgs("archived", "active", cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	// Act
	n, err := client.ArchiveActivitiesBefore(context.Background(), cutoff)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestPurgeArchivedBefore_WhenDeleteFails_ThenWrapsError(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectExec("DELETE FROM activities").WillReturnError(assert.AnError)

	// Act
	_, err := client.PurgeArchivedBefore(context.Background(), time.Now())

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMigrate_WhenCalled_ThenAppliesSchema(t *testing.T) {
	// Arrange
	client, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS activities").WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	err := client.Migrate(context.Background())

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_WhenNotesAtValidatorLimit_ThenColumnHoldsFourByteCharacters(t *testing.T) {
	// notes is validated as at most 65535 characters; in utf8mb4 that can
	// be four times as many bytes, beyond TEXT's 65535-byte limit.
	assert.Regexp(t, `(?m)^\s*notes\s+MEDIUMTEXT\s+NULL`, schemaSQL)
}
