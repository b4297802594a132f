package reminders

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler is the handler for reminder API calls
type Handler struct {
	ReminderRepository ReminderRepositoryInterface
	UserRepository     users.UserRepositoryInterface
	Logger             logger.Interface
	ResponseManager    *communication.ResponseManager

	// NewCalendarRepository builds the calendar access for a user, swapped
	// out in tests
	NewCalendarRepository func(ctx context.Context, u *users.User) (calendar.RepositoryInterface, error)
}

// ReminderAdd creates a reminder. Events and meetings get mirrored to the
// connected Google Calendar, meetings with a Meet conference attached.
func (handler *Handler) ReminderAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	reminder := Reminder{}

	err := json.NewDecoder(request.Body).Decode(&reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, err.Error(), err)
		return
	}

	userObjectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	reminder.UserID = userObjectID

	if reminder.Type != TypeReminder {
		err = handler.mirrorToCalendar(request.Context(), userID, &reminder)
		if err != nil && err != errCalendarNotConnected {
			handler.ResponseManager.RespondWithError(writer, http.StatusServiceUnavailable,
				"Problem mirroring to the calendar", err)
			return
		}
	}

	err = handler.ReminderRepository.Add(request.Context(), &reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist reminder", err)
		return
	}

	handler.ResponseManager.Respond(writer, &reminder)
}

// errCalendarNotConnected signals that the user never granted calendar
// access, so the reminder just stays local
var errCalendarNotConnected = errors.New("calendar not connected")

// mirrorToCalendar pushes the reminder to the user's Google Calendar and
// records the created event on the reminder
func (handler *Handler) mirrorToCalendar(ctx context.Context, userID string, reminder *Reminder) error {
	u, err := handler.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.GoogleCalendarConnection.EncryptedToken == "" {
		return errCalendarNotConnected
	}

	event, err := BuildCalendarEvent(reminder)
	if err != nil {
		return err
	}

	calendarRepository, err := handler.NewCalendarRepository(ctx, u)
	if err != nil {
		return err
	}

	created, err := calendarRepository.CreateEvent(ctx, event, reminder.Type == TypeMeeting)
	if err != nil {
		return err
	}

	reminder.GoogleCalendarEventID = created.CalendarEventID
	reminder.GoogleMeetLink = created.MeetLink

	return nil
}

// GetAllReminders responds with all reminders of the requesting user
func (handler *Handler) GetAllReminders(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	reminders, err := handler.ReminderRepository.FindAll(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem getting reminders", err)
		return
	}

	handler.ResponseManager.Respond(writer, reminders)
}

// ReminderUpdate updates the fields of a reminder
func (handler *Handler) ReminderUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	reminderID := mux.Vars(request)["reminderID"]

	reminder, err := handler.ReminderRepository.FindByID(request.Context(), reminderID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Couldn't find reminder", err)
		return
	}

	err = json.NewDecoder(request.Body).Decode(reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, err.Error(), err)
		return
	}

	err = handler.ReminderRepository.Update(request.Context(), reminder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist reminder", err)
		return
	}

	handler.ResponseManager.Respond(writer, reminder)
}

// ReminderToggle flips the completed flag of a reminder
func (handler *Handler) ReminderToggle(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	reminderID := mux.Vars(request)["reminderID"]

	reminder, err := handler.ReminderRepository.FindByID(request.Context(), reminderID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Couldn't find reminder", err)
		return
	}

	err = handler.ReminderRepository.SetCompleted(request.Context(), reminderID, userID, !reminder.Completed)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist reminder", err)
		return
	}

	reminder.Completed = !reminder.Completed

	handler.ResponseManager.Respond(writer, reminder)
}

// ReminderDelete deletes a reminder
func (handler *Handler) ReminderDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	reminderID := mux.Vars(request)["reminderID"]

	err := handler.ReminderRepository.Delete(request.Context(), reminderID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to delete reminder", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
