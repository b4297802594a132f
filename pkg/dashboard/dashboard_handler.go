package dashboard

import (
	"net/http"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/date"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/reminders"
	"github.com/dayboard-app/dayboard-backend/pkg/stats"
	"github.com/dayboard-app/dayboard-backend/pkg/study"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
	"golang.org/x/sync/errgroup"
)

const upcomingWindow = 24 * time.Hour

// Handler is the handler for the combined dashboard API calls
type Handler struct {
	TaskRepository     tasks.TaskRepositoryInterface
	ReminderRepository reminders.ReminderRepositoryInterface
	StudyRepository    study.StudyRepositoryInterface
	SyncManager        *calendar.SyncManager
	Logger             logger.Interface
	ResponseManager    *communication.ResponseManager
}

// DashboardDay responds with everything scheduled on one day, tasks and
// reminders from the database merged with the synced calendar events
func (handler *Handler) DashboardDay(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	day := time.Now()
	if raw := request.URL.Query().Get("date"); raw != "" {
		parsed, ok := date.ParseSafe(raw)
		if !ok {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
				"Invalid date parameter", nil)
			return
		}
		day = parsed
	}

	dayStart := date.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	var (
		dayTasks     []tasks.Task
		dayReminders []reminders.Reminder
		dayEvents    []calendar.Event
	)

	group, groupCtx := errgroup.WithContext(request.Context())

	group.Go(func() error {
		var err error
		dayTasks, err = handler.TaskRepository.FindBetween(groupCtx, userID, dayStart, dayEnd)
		return err
	})

	group.Go(func() error {
		var err error
		dayReminders, err = handler.ReminderRepository.FindBetween(groupCtx, userID, dayStart, dayEnd)
		return err
	})

	group.Go(func() error {
		controller, err := handler.SyncManager.ControllerFor(groupCtx, userID)
		if err != nil || controller == nil {
			return err
		}

		err = controller.Refresh(groupCtx, dayStart)
		if err != nil {
			// The merged day still renders without fresh calendar data
			handler.Logger.Warning("Calendar refresh failed for dashboard", err)
		}

		dayEvents = controller.Events()
		return nil
	})

	err := group.Wait()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem assembling the dashboard", err)
		return
	}

	handler.ResponseManager.Respond(writer, MergeByDay(dayStart, dayTasks, dayReminders, dayEvents))
}

// DashboardUpcoming responds with the active reminders due in the next day
func (handler *Handler) DashboardUpcoming(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	upcoming, err := handler.ReminderRepository.FindUpcoming(request.Context(), userID, upcomingWindow)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem getting upcoming reminders", err)
		return
	}

	handler.ResponseManager.Respond(writer, upcoming)
}

// TaskSeries responds with the bucketed task counts for a range
func (handler *Handler) TaskSeries(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	rng, ok := parseRange(request)
	if !ok {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Invalid range parameter", nil)
		return
	}

	records, err := handler.TaskRepository.FindAll(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem getting tasks", err)
		return
	}

	handler.ResponseManager.Respond(writer, stats.TaskSeries(records, rng, time.Now()))
}

// StudySeries responds with the bucketed study hours for a range, together
// with the daily goal when one is set
func (handler *Handler) StudySeries(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	rng, ok := parseRange(request)
	if !ok {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Invalid range parameter", nil)
		return
	}

	var (
		sessions []study.Session
		goal     *study.Goal
	)

	group, groupCtx := errgroup.WithContext(request.Context())

	group.Go(func() error {
		var err error
		sessions, err = handler.StudyRepository.FindAllSessions(groupCtx, userID)
		return err
	})

	group.Go(func() error {
		found, err := handler.StudyRepository.FindGoal(groupCtx, userID)
		if err != nil {
			// No goal set yet is not an error for the series
			return nil
		}
		goal = found
		return nil
	})

	err := group.Wait()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem getting study sessions", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{
		"series": stats.StudySeries(sessions, rng, time.Now()),
		"goal":   goal,
	})
}

func parseRange(request *http.Request) (stats.Range, bool) {
	raw := request.URL.Query().Get("range")
	if raw == "" {
		return stats.RangeWeek, true
	}

	rng := stats.Range(raw)
	switch rng {
	case stats.RangeToday, stats.RangeWeek, stats.RangeMonth, stats.RangeYear:
		return rng, true
	}

	return "", false
}
