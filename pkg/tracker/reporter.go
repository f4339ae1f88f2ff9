package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/internal/models"
	"github.com/dhima/activity-logger/pkg/dom"
	"go.uber.org/zap"
)

// EndpointPath is the fixed path reports are posted to, relative to the
// page origin.
const EndpointPath = "/api/activity"

// HTTPDoer is the subset of *http.Client the reporter needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Reporter sends activity records without waiting for the outcome. Failures
// are logged and never returned.
type Reporter struct {
	client HTTPDoer
	logger logging.Logger

	inflight sync.WaitGroup
}

// NewReporter builds a reporter. A nil client uses http.DefaultClient.
func NewReporter(client HTTPDoer, logger logging.Logger) *Reporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reporter{
		client: client,
		logger: logger.With(zap.String("component", "activity_reporter")),
	}
}

// Report builds the record for the page at loc and posts it in the
// background. It returns as soon as the request has been handed off.
func (r *Reporter) Report(loc dom.Location, f Fields) {
	record := NewRecord(loc, f)
	fields := []zap.Field{
		zap.Stringp("feature", record.Feature),
		zap.String("action", record.Action),
		zap.String("endpoint", record.Endpoint),
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("activity logging error", append(fields, zap.Any("panic", p))...)
		}
	}()

	req, err := r.newRequest(loc.Origin, record)
	if err != nil {
		r.logger.Error("activity logging error", append(fields, zap.Error(err))...)
		return
	}

	r.inflight.Add(1)
	go r.send(req, fields)
}

// Wait blocks until every report issued so far has finished. It is meant
// for process shutdown, never for the interaction path.
func (r *Reporter) Wait() {
	r.inflight.Wait()
}

func (r *Reporter) newRequest(origin string, record models.ActivityRecord) (*http.Request, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity record: %w", err)
	}

	// Background context: a report outlives the interaction that caused it.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, origin+EndpointPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build activity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (r *Reporter) send(req *http.Request, fields []zap.Field) {
	defer r.inflight.Done()
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("activity logging error", append(fields, zap.Any("panic", p))...)
		}
	}()

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("activity logging error", append(fields, zap.Error(err))...)
		return
	}
	// Status is ignored; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	r.logger.Debug("activity reported", append(fields, zap.Int("status", resp.StatusCode))...)
}

// NewRecord builds the wire record for a click at loc. Empty feature or
// notes become null and an empty action becomes "click".
func NewRecord(loc dom.Location, f Fields) models.ActivityRecord {
	action := f.Action
	if action == "" {
		action = DefaultAction
	}
	return models.ActivityRecord{
		ActivityType: models.ActivityTypeUIClick,
		Feature:      nonEmpty(f.Feature),
		Action:       action,
		Notes:        nonEmpty(f.Notes),
		Endpoint:     loc.Path,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
