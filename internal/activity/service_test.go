package activity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dhima/activity-logger/internal/models"
	"github.com/dhima/activity-logger/internal/testutil/fakes"
	"github.com/dhima/activity-logger/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *fakes.FakeActivityStore, *fakes.FakePublisher) {
	store := fakes.NewFakeActivityStore()
	pub := &fakes.FakePublisher{}
	svc, err := NewServiceWithClock(store, pub, zap.NewNop(), clock.NewFixed(fixedNow))
	require.NoError(t, err)
	return svc, store, pub
}

const listingBody = `{"activity_type":"ui_click","feature":"listing","action":"view_more","notes":"mls=12345","endpoint":"/listings"}`

func TestRecord_WhenBodyValid_ThenStoresWithCallerDetailsAndPublishes(t *testing.T) {
	// Arrange
	svc, store, pub := newTestService(t)
	meta := models.RequestMeta{
		ContactID: "1042",
		Email:     "agent@example.com",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	}

	// Act
	a, err := svc.Record(context.Background(), []byte(listingBody), meta)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "ui_click", a.ActivityType)
	assert.Equal(t, "listing", *a.Feature)
	assert.Equal(t, "view_more", a.Action)
	assert.Equal(t, "mls=12345", *a.Notes)
	assert.Equal(t, "/listings", a.Endpoint)
	assert.Equal(t, "1042", *a.ContactID)
	assert.Equal(t, "agent@example.com", *a.Email)
	assert.Equal(t, "203.0.113.7", a.IPAddress)
	assert.Equal(t, "Mozilla/5.0", a.UserAgent)
	assert.Equal(t, models.RetentionStatusActive, a.RetentionStatus)
	assert.Equal(t, fixedNow, a.CreatedAt)

	stored, _ := store.GetActivity(context.Background(), a.ID)
	assert.NotNil(t, stored)

	events := pub.Published()
	require.Len(t, events, 1)
	assert.Equal(t, a.ID, events[0].ActivityID)
	assert.Equal(t, "agent@example.com", string(events[0].Key()))
}

func TestRecord_WhenAnonymousWithNulls_ThenStoresNils(t *testing.T) {
	// Arrange
	svc, _, _ := newTestService(t)
	body := `{"activity_type":"ui_click","feature":null,"action":"click","notes":null,"endpoint":"/"}`

	// Act
	a, err := svc.Record(context.Background(), []byte(body), models.RequestMeta{})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, a.Feature)
	assert.Nil(t, a.Notes)
	assert.Nil(t, a.ContactID)
	assert.Nil(t, a.Email)
	assert.Equal(t, "click", a.Action)
	assert.Equal(t, "/", a.Endpoint)
}

func TestRecord_WhenBodyBreaksSchema_ThenReturnsValidationError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"activity_type":`},
		{name: "missing action", body: `{"activity_type":"ui_click","endpoint":"/"}`},
		{name: "empty activity type", body: `{"activity_type":"","action":"click","endpoint":"/"}`},
		{name: "feature wrong type", body: `{"activity_type":"ui_click","feature":7,"action":"click","endpoint":"/"}`},
		{name: "array body", body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc, store, pub := newTestService(t)

			// Act
			_, err := svc.Record(context.Background(), []byte(tt.body), models.RequestMeta{})

			// Assert
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Empty(t, store.All())
			assert.Empty(t, pub.Published())
		})
	}
}

func TestRecord_WhenStoreFails_ThenReturnsErrorAndDoesNotPublish(t *testing.T) {
	// Arrange
	svc, store, pub := newTestService(t)
	store.Fail = true

	// Act
	_, err := svc.Record(context.Background(), []byte(listingBody), models.RequestMeta{})

	// Assert
	assert.ErrorIs(t, err, fakes.ErrStoreDown)
	assert.Empty(t, pub.Published())
}

func TestRecord_WhenPublishFails_ThenStillSucceeds(t *testing.T) {
	// Arrange
	svc, store, pub := newTestService(t)
	pub.FailNext = true

	// Act
	a, err := svc.Record(context.Background(), []byte(listingBody), models.RequestMeta{})

	// Assert
	require.NoError(t, err)
	assert.Len(t, store.All(), 1)
	assert.Equal(t, a.ID, store.All()[0].ID)
}

func TestRecord_WhenPublisherNil_ThenOnlyStores(t *testing.T) {
	// Arrange
	store := fakes.NewFakeActivityStore()
	svc, err := NewService(store, nil, zap.NewNop())
	require.NoError(t, err)

	// Act
	_, err = svc.Record(context.Background(), []byte(listingBody), models.RequestMeta{})

	// Assert
	require.NoError(t, err)
	assert.Len(t, store.All(), 1)
}

func TestQuery_WhenPaginating_ThenComputesPages(t *testing.T) {
	// Arrange
	store := fakes.NewFakeActivityStore()
	tick := 0
	svc, err := NewServiceWithClock(store, nil, zap.NewNop(), clock.Func(func() time.Time {
		tick++
		return fixedNow.Add(time.Duration(tick) * time.Second)
	}))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := svc.Record(context.Background(), []byte(listingBody), models.RequestMeta{})
		require.NoError(t, err)
	}

	// Act
	list, page, err := svc.Query(context.Background(), models.ListActivitiesQuery{Page: 1, Limit: 2})

	// Assert
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, models.Pagination{CurrentPage: 1, PageSize: 2, TotalPages: 3, TotalRecords: 5}, page)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt), "newest first")
}

func TestQuery_WhenFilteringByFeature_ThenReturnsMatchesOnly(t *testing.T) {
	// Arrange
	svc, _, _ := newTestService(t)
	_, _ = svc.Record(context.Background(), []byte(listingBody), models.RequestMeta{})
	_, _ = svc.Record(context.Background(), []byte(`{"activity_type":"print_flyer","action":"print","endpoint":"/flyer"}`), models.RequestMeta{})

	// Act
	list, page, err := svc.Query(context.Background(), models.ListActivitiesQuery{Feature: "listing"})

	// Assert
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "view_more", list[0].Action)
	assert.Equal(t, int64(1), page.TotalRecords)
	assert.Equal(t, 20, page.PageSize)
}

func TestGet_WhenMissing_ThenReturnsNilNil(t *testing.T) {
	// Arrange
	svc, _, _ := newTestService(t)

	// Act
	a, err := svc.Get(context.Background(), "nope")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestUserSummaries_WhenSeveralUsers_ThenGroupsByEmailNewestFirst(t *testing.T) {
	// Arrange
	store := fakes.NewFakeActivityStore()
	tick := 0
	svc, err := NewServiceWithClock(store, nil, zap.NewNop(), clock.Func(func() time.Time {
		tick++
		return fixedNow.Add(time.Duration(tick) * time.Minute)
	}))
	require.NoError(t, err)
	ctx := context.Background()
	_, _ = svc.Record(ctx, []byte(listingBody), models.RequestMeta{Email: "a@example.com"})
	_, _ = svc.Record(ctx, []byte(listingBody), models.RequestMeta{Email: "a@example.com"})
	_, _ = svc.Record(ctx, []byte(listingBody), models.RequestMeta{Email: "b@example.com", ContactID: "9"})
	_, _ = svc.Record(ctx, []byte(listingBody), models.RequestMeta{})

	// Act
	out, err := svc.UserSummaries(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b@example.com", out[0].Email)
	assert.Equal(t, int64(1), out[0].ActivityCount)
	assert.Equal(t, "a@example.com", out[1].Email)
	assert.Equal(t, int64(2), out[1].ActivityCount)
}

func TestStats_WhenStoreFails_ThenWrapsError(t *testing.T) {
	// Arrange
	svc, store, _ := newTestService(t)
	store.Fail = true

	// Act
	_, err := svc.Stats(context.Background())

	// Assert
	assert.ErrorIs(t, err, fakes.ErrStoreDown)
}

func TestRecord_WhenNotesMultibyteAtLimit_ThenAcceptedAndOverLimitRejected(t *testing.T) {
	// Arrange
	svc, store, _ := newTestService(t)
	bodyWithNotes := func(n int) []byte {
		notes := strings.Repeat("\U0001F600", n)
		b, err := json.Marshal(models.ActivityRecord{
			ActivityType: models.ActivityTypeUIClick,
			Action:       "click",
			Notes:        &notes,
			Endpoint:     "/",
		})
		require.NoError(t, err)
		return b
	}

	// Act
	atLimit, err := svc.Record(context.Background(), bodyWithNotes(65535), models.RequestMeta{})
	_, overErr := svc.Record(context.Background(), bodyWithNotes(65536), models.RequestMeta{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, atLimit.Notes)
	assert.Len(t, *atLimit.Notes, 65535*4)
	var verr ValidationError
	assert.True(t, errors.As(overErr, &verr))
	assert.Len(t, store.All(), 1)
}
