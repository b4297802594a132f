package dashboard

import (
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/date"
	"github.com/dayboard-app/dayboard-backend/pkg/reminders"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
)

// DayBundle is everything on the dashboard for one calendar day
type DayBundle struct {
	Day       string               `json:"day"`
	Tasks     []tasks.Task         `json:"tasks"`
	Reminders []reminders.Reminder `json:"reminders"`
	Events    []calendar.Event     `json:"events"`
}

// MergeByDay collects every task, reminder and calendar event dated on the
// given day. The result is a plain union, a reminder mirrored to the calendar
// shows up twice, once itself and once as the fetched event.
func MergeByDay(day time.Time, taskList []tasks.Task, reminderList []reminders.Reminder, events []calendar.Event) DayBundle {
	bundle := DayBundle{
		Day:       date.DayKey(day),
		Tasks:     []tasks.Task{},
		Reminders: []reminders.Reminder{},
		Events:    []calendar.Event{},
	}

	for _, task := range taskList {
		if date.SameDaySafe(task.Date, day) {
			bundle.Tasks = append(bundle.Tasks, task)
		}
	}

	for _, reminder := range reminderList {
		if date.SameDaySafe(reminder.DueDate, day) {
			bundle.Reminders = append(bundle.Reminders, reminder)
		}
	}

	for _, event := range events {
		when, ok := event.When()
		if ok && date.SameDay(when, day) {
			bundle.Events = append(bundle.Events, event)
		}
	}

	return bundle
}
