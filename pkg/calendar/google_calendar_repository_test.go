package calendar

import (
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"google.golang.org/api/googleapi"
)

func TestGoogleEventPayloadTimed(t *testing.T) {
	start := time.Date(2022, 3, 9, 9, 0, 0, 0, time.UTC)

	event := Event{
		Title: "Standup",
		Start: EventTime{DateTime: start},
	}

	payload := GoogleEventPayload(&event)

	if payload.Start.DateTime != "2022-03-09T09:00:00Z" {
		t.Errorf("wrong start %s", payload.Start.DateTime)
	}

	if payload.Start.Date != "" {
		t.Errorf("timed event must not carry a date")
	}

	if payload.End.DateTime != "2022-03-09T10:00:00Z" {
		t.Errorf("expected default end one hour later, got %s", payload.End.DateTime)
	}
}

func TestGoogleEventPayloadAllDay(t *testing.T) {
	event := Event{
		Title:  "Holiday",
		AllDay: true,
		Start:  EventTime{Date: "2022-03-09"},
	}

	payload := GoogleEventPayload(&event)

	if payload.Start.Date != "2022-03-09" {
		t.Errorf("wrong start %s", payload.Start.Date)
	}

	if payload.Start.DateTime != "" {
		t.Errorf("all day event must not carry a timestamp")
	}

	if payload.End.Date != "2022-03-09" {
		t.Errorf("wrong end %s", payload.End.Date)
	}
}

func TestGoogleEventPayloadAttendees(t *testing.T) {
	event := Event{
		Title:     "Planning",
		Start:     EventTime{DateTime: time.Date(2022, 3, 9, 14, 0, 0, 0, time.UTC)},
		Attendees: []string{"ann@example.com", "", "bob@example.com"},
	}

	payload := GoogleEventPayload(&event)

	if len(payload.Attendees) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(payload.Attendees))
	}

	if payload.Attendees[0].Email != "ann@example.com" || payload.Attendees[1].Email != "bob@example.com" {
		t.Errorf("wrong attendees")
	}

	empty := Event{
		Title: "Solo",
		Start: EventTime{DateTime: time.Date(2022, 3, 9, 14, 0, 0, 0, time.UTC)},
	}

	if len(GoogleEventPayload(&empty).Attendees) != 0 {
		t.Errorf("expected no attendees")
	}
}

func TestClassifyGoogleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", &googleapi.Error{Code: 401}, communication.ErrCalendarAuthInvalid},
		{"forbidden", &googleapi.Error{Code: 403}, communication.ErrCalendarAuthInvalid},
		{
			"api disabled",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "accessNotConfigured"}}},
			communication.ErrCalendarAPIDisabled,
		},
		{"server error", &googleapi.Error{Code: 500}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGoogleError(tt.err)

			if tt.want == nil {
				if got != tt.err {
					t.Errorf("expected error to pass through, got %v", got)
				}
				return
			}

			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
