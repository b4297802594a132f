package dashboard

import (
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/reminders"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
)

func TestMergeByDayCollectsAllSources(t *testing.T) {
	day := time.Date(2022, 3, 9, 0, 0, 0, 0, time.Local)

	taskList := []tasks.Task{
		{Text: "Write report", Date: time.Date(2022, 3, 9, 18, 0, 0, 0, time.Local)},
		{Text: "Tomorrow", Date: time.Date(2022, 3, 10, 9, 0, 0, 0, time.Local)},
	}

	reminderList := []reminders.Reminder{
		{Title: "Dentist", DueDate: time.Date(2022, 3, 9, 11, 0, 0, 0, time.Local)},
		{Title: "Yesterday", DueDate: time.Date(2022, 3, 8, 11, 0, 0, 0, time.Local)},
	}

	events := []calendar.Event{
		{Title: "Standup", Start: calendar.EventTime{DateTime: time.Date(2022, 3, 9, 9, 0, 0, 0, time.Local)}},
		{Title: "Holiday", AllDay: true, Start: calendar.EventTime{Date: "2022-03-09"}},
		{Title: "Next week", Start: calendar.EventTime{DateTime: time.Date(2022, 3, 16, 9, 0, 0, 0, time.Local)}},
	}

	bundle := MergeByDay(day, taskList, reminderList, events)

	if bundle.Day != "2022-03-09" {
		t.Errorf("wrong day key %s", bundle.Day)
	}

	if len(bundle.Tasks) != 1 || bundle.Tasks[0].Text != "Write report" {
		t.Errorf("wrong tasks %v", bundle.Tasks)
	}

	if len(bundle.Reminders) != 1 || bundle.Reminders[0].Title != "Dentist" {
		t.Errorf("wrong reminders %v", bundle.Reminders)
	}

	if len(bundle.Events) != 2 {
		t.Errorf("expected the timed and the all day event, got %d", len(bundle.Events))
	}
}

func TestMergeByDayKeepsMirroredReminderAndItsEvent(t *testing.T) {
	day := time.Date(2022, 3, 9, 0, 0, 0, 0, time.Local)

	reminderList := []reminders.Reminder{
		{Title: "Planning", DueDate: time.Date(2022, 3, 9, 14, 0, 0, 0, time.Local), GoogleCalendarEventID: "abc"},
	}

	events := []calendar.Event{
		{CalendarEventID: "abc", Title: "Planning", Start: calendar.EventTime{DateTime: time.Date(2022, 3, 9, 14, 0, 0, 0, time.Local)}},
	}

	bundle := MergeByDay(day, nil, reminderList, events)

	if len(bundle.Reminders) != 1 || len(bundle.Events) != 1 {
		t.Errorf("mirrored entries must not be deduplicated")
	}
}

func TestMergeByDaySkipsUnparsableDates(t *testing.T) {
	day := time.Date(2022, 3, 9, 0, 0, 0, 0, time.Local)

	taskList := []tasks.Task{
		{Text: "No date"},
	}

	events := []calendar.Event{
		{Title: "Broken", Start: calendar.EventTime{Date: "not-a-date"}},
	}

	bundle := MergeByDay(day, taskList, nil, events)

	if len(bundle.Tasks) != 0 || len(bundle.Events) != 0 {
		t.Errorf("entries without a usable date must be excluded")
	}
}
