package reminders

import (
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/communication"
)

func TestBuildCalendarEventRejectsIncompleteReminders(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
	}{
		{"no title", Reminder{DueDate: time.Date(2022, 3, 9, 9, 0, 0, 0, time.UTC)}},
		{"no due date", Reminder{Title: "Standup"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCalendarEvent(&tt.reminder)
			if err != communication.ErrInvalidEvent {
				t.Errorf("expected invalid event error, got %v", err)
			}
		})
	}
}

func TestBuildCalendarEventTimed(t *testing.T) {
	reminder := Reminder{
		Title:   "Standup",
		Type:    TypeMeeting,
		DueDate: time.Date(2022, 3, 9, 9, 0, 0, 0, time.UTC),
	}

	event, err := BuildCalendarEvent(&reminder)
	if err != nil {
		t.Fatal(err)
	}

	if event.AllDay {
		t.Errorf("timed reminder must not build an all day event")
	}

	if !event.Start.DateTime.Equal(reminder.DueDate) {
		t.Errorf("wrong start %v", event.Start.DateTime)
	}

	if event.Start.Date != "" {
		t.Errorf("timed event must not carry a date")
	}
}

func TestBuildCalendarEventAllDay(t *testing.T) {
	reminder := Reminder{
		Title:   "Submit report",
		Type:    TypeReminder,
		AllDay:  true,
		DueDate: time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	event, err := BuildCalendarEvent(&reminder)
	if err != nil {
		t.Fatal(err)
	}

	if !event.AllDay {
		t.Errorf("expected an all day event")
	}

	if event.Start.Date != "2022-03-09" {
		t.Errorf("wrong start %s", event.Start.Date)
	}

	if !event.Start.DateTime.IsZero() {
		t.Errorf("all day event must not carry a timestamp")
	}
}

func TestBuildCalendarEventDropsEmptyAttendees(t *testing.T) {
	reminder := Reminder{
		Title:     "Planning",
		Type:      TypeMeeting,
		DueDate:   time.Date(2022, 3, 9, 14, 0, 0, 0, time.UTC),
		Attendees: []string{"ann@example.com", ""},
	}

	event, err := BuildCalendarEvent(&reminder)
	if err != nil {
		t.Fatal(err)
	}

	if len(event.Attendees) != 1 || event.Attendees[0] != "ann@example.com" {
		t.Errorf("wrong attendees %v", event.Attendees)
	}
}
