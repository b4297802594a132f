package calendar

import (
	"context"
	"sync"
	"time"
)

// MockCalendarRepository is a calendar repository for testing purposes
type MockCalendarRepository struct {
	Events     []Event
	Err        error
	FetchCalls int
	Created    []*Event

	mu sync.Mutex
}

// FetchWindow returns the configured events or error
func (r *MockCalendarRepository) FetchWindow(_ context.Context, _ time.Time) ([]Event, error) {
	r.mu.Lock()
	r.FetchCalls++
	r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	return r.Events, nil
}

// Fetches returns how often FetchWindow was called, safe while a sync
// controller goroutine is still running
func (r *MockCalendarRepository) Fetches() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.FetchCalls
}

// CreateEvent records the event and assigns it an ID
func (r *MockCalendarRepository) CreateEvent(_ context.Context, event *Event, withConference bool) (*Event, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	created := *event
	created.CalendarEventID = "mock-event-id"
	if withConference {
		created.MeetLink = "https://meet.example.com/mock"
	}

	r.Created = append(r.Created, &created)

	return &created, nil
}
