package reminders

import (
	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/date"
)

// BuildCalendarEvent converts a reminder into the calendar event that mirrors
// it. Reminders without a title or due date cannot be mirrored.
func BuildCalendarEvent(reminder *Reminder) (*calendar.Event, error) {
	if reminder.Title == "" {
		return nil, communication.ErrInvalidEvent
	}

	if reminder.DueDate.IsZero() {
		return nil, communication.ErrInvalidEvent
	}

	event := calendar.Event{
		Title:       reminder.Title,
		Description: reminder.Description,
		Location:    reminder.Location,
		AllDay:      reminder.AllDay,
	}

	if reminder.AllDay {
		event.Start.Date = date.DayKey(reminder.DueDate)
		if !reminder.EndTime.IsZero() {
			event.End.Date = date.DayKey(reminder.EndTime)
		}
	} else {
		event.Start.DateTime = reminder.DueDate
		if !reminder.EndTime.IsZero() {
			event.End.DateTime = reminder.EndTime
		}
	}

	for _, attendee := range reminder.Attendees {
		if attendee == "" {
			continue
		}
		event.Attendees = append(event.Attendees, attendee)
	}

	return &event, nil
}
