package fakes

import (
	"context"
	"errors"
	"sync"

	platformEvents "github.com/dhima/activity-logger/platform/events"
)

// FakePublisher captures published events and can simulate failures.
type FakePublisher struct {
	mu        sync.Mutex
	Events    []platformEvents.ActivityEvent
	FailNext  bool
	FailError error
}

func (p *FakePublisher) Publish(_ context.Context, e platformEvents.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNext {
		p.FailNext = false
		if p.FailError == nil {
			p.FailError = errors.New("publish failed")
		}
		return p.FailError
	}
	p.Events = append(p.Events, e)
	return nil
}

// Published returns a copy of the events captured so far.
func (p *FakePublisher) Published() []platformEvents.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platformEvents.ActivityEvent(nil), p.Events...)
}
