package fakes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhima/activity-logger/internal/models"
)

var ErrStoreDown = errors.New("store unavailable")

// FakeActivityStore is an in-memory activity store. Set Fail to make every
// call return ErrStoreDown.
type FakeActivityStore struct {
	mu         sync.Mutex
	activities map[string]models.Activity
	Fail       bool
}

func NewFakeActivityStore() *FakeActivityStore {
	return &FakeActivityStore{activities: make(map[string]models.Activity)}
}

func (f *FakeActivityStore) CreateActivity(_ context.Context, a *models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return ErrStoreDown
	}
	f.activities[a.ID] = *a
	return nil
}

func (f *FakeActivityStore) GetActivity(_ context.Context, id string) (*models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrStoreDown
	}
	a, ok := f.activities[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// All returns every stored activity, newest first.
func (f *FakeActivityStore) All() []models.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedLocked()
}

func (f *FakeActivityStore) sortedLocked() []models.Activity {
	out := make([]models.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *FakeActivityStore) ListActivities(_ context.Context, q models.ListActivitiesQuery) ([]models.Activity, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, 0, ErrStoreDown
	}
	retention := q.RetentionStatus
	if retention == "" {
		retention = string(models.RetentionStatusActive)
	}
	out := make([]models.Activity, 0)
	for _, a := range f.sortedLocked() {
		if string(a.RetentionStatus) != retention {
			continue
		}
		if q.ActivityType != "" && a.ActivityType != q.ActivityType {
			continue
		}
		if q.Feature != "" && (a.Feature == nil || *a.Feature != q.Feature) {
			continue
		}
		if q.Action != "" && a.Action != q.Action {
			continue
		}
		if q.ActionPrefix != "" && !strings.HasPrefix(a.Action, q.ActionPrefix) {
			continue
		}
		if q.Email != "" && (a.Email == nil || *a.Email != q.Email) {
			continue
		}
		out = append(out, a)
	}
	total := int64(len(out))
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	start := (q.Page - 1) * q.Limit
	if start > len(out) {
		return []models.Activity{}, total, nil
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *FakeActivityStore) ListUserSummaries(_ context.Context) ([]models.UserActivitySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrStoreDown
	}
	byEmail := map[string]*models.UserActivitySummary{}
	for _, a := range f.activities {
		if a.Email == nil || *a.Email == "" {
			continue
		}
		s, ok := byEmail[*a.Email]
		if !ok {
			s = &models.UserActivitySummary{Email: *a.Email}
			byEmail[*a.Email] = s
		}
		s.ActivityCount++
		if a.CreatedAt.After(s.LastActivity) {
			s.LastActivity = a.CreatedAt
		}
		if a.ContactID != nil {
			s.ContactID = a.ContactID
		}
	}
	out := make([]models.UserActivitySummary, 0, len(byEmail))
	for _, s := range byEmail {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}

func (f *FakeActivityStore) CountActivities(_ context.Context) (models.ActivityStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return models.ActivityStats{}, ErrStoreDown
	}
	var stats models.ActivityStats
	for _, a := range f.activities {
		switch a.RetentionStatus {
		case models.RetentionStatusActive:
			stats.Active++
		case models.RetentionStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

func (f *FakeActivityStore) ArchiveActivitiesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return 0, ErrStoreDown
	}
	var n int64
	for id, a := range f.activities {
		if a.RetentionStatus == models.RetentionStatusActive && a.CreatedAt.Before(cutoff) {
			a.RetentionStatus = models.RetentionStatusArchived
			f.activities[id] = a
			n++
		}
	}
	return n, nil
}

func (f *FakeActivityStore) PurgeArchivedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return 0, ErrStoreDown
	}
	var n int64
	for id, a := range f.activities {
		if a.RetentionStatus == models.RetentionStatusArchived && a.CreatedAt.Before(cutoff) {
			delete(f.activities, id)
			n++
		}
	}
	return n, nil
}
