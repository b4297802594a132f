package calendar

import (
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/date"
)

// EventTime is either a concrete point in time or a whole day
type EventTime struct {
	Date     string    `json:"date,omitempty" bson:"date,omitempty"`
	DateTime time.Time `json:"dateTime,omitempty" bson:"dateTime,omitempty"`
}

// Event is a single calendar entry, either fetched from Google or about to be pushed there
type Event struct {
	CalendarEventID string    `json:"calendarEventId" bson:"calendarEventId"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Location        string    `json:"location,omitempty" bson:"location,omitempty"`
	Start           EventTime `json:"start" bson:"start"`
	End             EventTime `json:"end" bson:"end"`
	AllDay          bool      `json:"allDay" bson:"allDay"`
	Attendees       []string  `json:"attendees,omitempty" bson:"attendees,omitempty"`
	HTMLLink        string    `json:"htmlLink,omitempty" bson:"htmlLink,omitempty"`
	MeetLink        string    `json:"meetLink,omitempty" bson:"meetLink,omitempty"`
}

// When resolves the start of the event to a day, preferring the concrete
// time over the all day date. The second return value is false when the
// event carries no usable start at all.
func (event *Event) When() (time.Time, bool) {
	if !event.DateTime().IsZero() {
		return event.Start.DateTime, true
	}

	return date.ParseSafe(event.Start.Date)
}

// DateTime returns the concrete start time, zero for all day events
func (event *Event) DateTime() time.Time {
	return event.Start.DateTime
}
