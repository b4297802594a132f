package calendar

import (
	"context"
	"time"
)

// RepositoryInterface is an interface for a calendar source the dashboard can sync against
type RepositoryInterface interface {
	// FetchWindow fetches all events from the month before to the month after the anchor
	FetchWindow(ctx context.Context, anchor time.Time) ([]Event, error)
	// CreateEvent pushes a new event to the calendar, optionally with a conference attached
	CreateEvent(ctx context.Context, event *Event, withConference bool) (*Event, error)
}
