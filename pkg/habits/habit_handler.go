package habits

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles all habit related API calls
type Handler struct {
	HabitRepository HabitRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// habitView is a habit enriched with its derived stats for list responses
type habitView struct {
	Habit
	Streak         int `json:"streak"`
	CompletionRate int `json:"completionRate"`
}

// HabitAdd is the route for adding a habit
func (handler *Handler) HabitAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	habit := Habit{}

	err := json.NewDecoder(request.Body).Decode(&habit)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	habit.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	v := validator.New()
	err = v.Struct(habit)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.HabitRepository.Add(request.Context(), &habit)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Habit couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, &habit, http.StatusCreated)
}

// GetAllHabits responds with all habits of a user including streak and rate
func (handler *Handler) GetAllHabits(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	habits, err := handler.HabitRepository.FindAll(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem retrieving habits", err)
		return
	}

	today := time.Now()
	views := make([]habitView, 0, len(habits))
	for i := range habits {
		completions, err := handler.HabitRepository.FindCompletions(request.Context(), habits[i].ID.Hex(), userID)
		if err != nil {
			handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
				"Problem retrieving habit completions", err)
			return
		}

		set := NewCompletionSet(completions)
		views = append(views, habitView{
			Habit:          habits[i],
			Streak:         CalculateStreak(&habits[i], set, today),
			CompletionRate: CompletionRate(&habits[i], set, today),
		})
	}

	handler.ResponseManager.Respond(writer, views)
}

// HabitUpdate is the route for updating a habit
func (handler *Handler) HabitUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	habitID := mux.Vars(request)["habitID"]

	habit, err := handler.HabitRepository.FindByID(request.Context(), habitID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Habit wasn't found", err)
		return
	}

	err = json.NewDecoder(request.Body).Decode(habit)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(habit)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.HabitRepository.Update(request.Context(), habit)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem updating the habit", err)
		return
	}

	handler.ResponseManager.Respond(writer, habit)
}

// HabitDelete deletes a habit with all its completions
func (handler *Handler) HabitDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	habitID := mux.Vars(request)["habitID"]

	err := handler.HabitRepository.Delete(request.Context(), habitID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem deleting the habit", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// CompletionPut writes the completion record for one day of a habit
func (handler *Handler) CompletionPut(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	habitID := mux.Vars(request)["habitID"]

	habit, err := handler.HabitRepository.FindByID(request.Context(), habitID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Habit wasn't found", err)
		return
	}

	completion := Completion{}
	err = json.NewDecoder(request.Body).Decode(&completion)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	completion.HabitID = habit.ID
	completion.UserID = habit.UserID

	v := validator.New()
	err = v.Struct(completion)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	// For quantitative habits the completed flag is derived, never stored
	if habit.Type == TypeQuantitative {
		completion.Completed = completion.Value >= TargetOf(habit)
	}

	err = handler.HabitRepository.UpsertCompletion(request.Context(), &completion)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Completion couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.Respond(writer, &completion)
}

// HabitStats responds with the trailing 30-day stats view of a habit
func (handler *Handler) HabitStats(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	habitID := mux.Vars(request)["habitID"]

	habit, err := handler.HabitRepository.FindByID(request.Context(), habitID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Habit wasn't found", err)
		return
	}

	completions, err := handler.HabitRepository.FindCompletions(request.Context(), habitID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem retrieving habit completions", err)
		return
	}

	stats := StatsData(habit, NewCompletionSet(completions), time.Now())

	handler.ResponseManager.Respond(writer, stats)
}
