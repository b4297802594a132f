package study

import (
	"encoding/json"
	"net/http"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles all study tracking related API calls
type Handler struct {
	StudyRepository StudyRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// SessionAdd is the route for logging a study session
func (handler *Handler) SessionAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	session := Session{}

	err := json.NewDecoder(request.Body).Decode(&session)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	session.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	v := validator.New()
	err = v.Struct(session)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.StudyRepository.AddSession(request.Context(), &session)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Session couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, &session, http.StatusCreated)
}

// GetAllSessions is the route for getting all study sessions of a user
func (handler *Handler) GetAllSessions(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	sessions, err := handler.StudyRepository.FindAllSessions(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem retrieving sessions", err)
		return
	}

	handler.ResponseManager.Respond(writer, sessions)
}

// SessionDelete deletes a study session
func (handler *Handler) SessionDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	sessionID := mux.Vars(request)["sessionID"]

	err := handler.StudyRepository.DeleteSession(request.Context(), sessionID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem deleting the session", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// GoalPut is the route for setting the daily study goal
func (handler *Handler) GoalPut(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	goal := Goal{}

	err := json.NewDecoder(request.Body).Decode(&goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	goal.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	v := validator.New()
	err = v.Struct(goal)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.StudyRepository.UpsertGoal(request.Context(), &goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Goal couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.Respond(writer, &goal)
}

// GoalGet is the route for reading the daily study goal
func (handler *Handler) GoalGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	goal, err := handler.StudyRepository.FindGoal(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "No goal set yet", err)
		return
	}

	handler.ResponseManager.Respond(writer, goal)
}
