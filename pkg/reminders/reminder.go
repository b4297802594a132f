package reminders

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The kinds of reminders
const (
	TypeReminder = "reminder"
	TypeEvent    = "event"
	TypeMeeting  = "meeting"
)

// Reminder is a dated entry on the dashboard. Events and meetings can be
// mirrored to the connected Google Calendar, meetings additionally get a
// Meet link.
type Reminder struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	UserID         primitive.ObjectID `json:"-" bson:"userId"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt"`

	Title       string    `json:"title" bson:"title" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Type        string    `json:"type" bson:"type" validate:"required,oneof=reminder event meeting"`
	DueDate     time.Time `json:"dueDate" bson:"dueDate" validate:"required"`
	EndTime     time.Time `json:"endTime,omitempty" bson:"endTime,omitempty"`
	AllDay      bool      `json:"allDay" bson:"allDay"`
	Attendees   []string  `json:"attendees,omitempty" bson:"attendees,omitempty"`
	Completed   bool      `json:"completed" bson:"completed"`
	Active      bool      `json:"active" bson:"active"`

	GoogleCalendarEventID string `json:"googleCalendarEventId,omitempty" bson:"googleCalendarEventId,omitempty"`
	GoogleMeetLink        string `json:"googleMeetLink,omitempty" bson:"googleMeetLink,omitempty"`
}
