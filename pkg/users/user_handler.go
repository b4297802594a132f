package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dayboard-app/dayboard-backend/internal/google"
	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/environment"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
)

// Handler is the handler for user API calls
type Handler struct {
	UserRepository  UserRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// UserGet responds with the profile of the requesting user
func (handler *Handler) UserGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	u, err := handler.UserRepository.FindByID(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find user", err)
		return
	}

	handler.ResponseManager.Respond(writer, u)
}

// UserAddDevice upserts a device token for push messaging
func (handler *Handler) UserAddDevice(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	body := map[string]string{}

	err := json.NewDecoder(request.Body).Decode(&body)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	deviceToken := body["deviceToken"]
	if deviceToken == "" {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"No device token specified", nil)
		return
	}

	u, err := handler.UserRepository.FindByID(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find user", err)
		return
	}

	found := false
	for i, token := range u.DeviceTokens {
		if token.Token == deviceToken {
			u.DeviceTokens[i].LastRegistered = time.Now()
			found = true
			break
		}
	}

	if !found {
		u.DeviceTokens = append(u.DeviceTokens, DeviceToken{
			Token:          deviceToken,
			LastRegistered: time.Now(),
		})
	}

	err = handler.UserRepository.Update(request.Context(), u)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist user", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// CalendarConnect responds with the URL where the user can grant calendar access
func (handler *Handler) CalendarConnect(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	u, err := handler.UserRepository.FindByID(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find user", err)
		return
	}

	url, stateToken, err := google.GetGoogleAuthURL()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusServiceUnavailable,
			"Problem with Google Calendar connection", err)
		return
	}

	u.GoogleCalendarConnection.StateToken = stateToken

	err = handler.UserRepository.Update(request.Context(), u)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist user", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]string{"url": url})
}

// CalendarCallback exchanges the OAuth code for a token and stores it encrypted
func (handler *Handler) CalendarCallback(writer http.ResponseWriter, request *http.Request) {
	stateToken := request.URL.Query().Get("state")
	authCode := request.URL.Query().Get("code")

	if stateToken == "" || authCode == "" {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Missing state or code parameter", nil)
		return
	}

	u, err := handler.UserRepository.FindByGoogleStateToken(request.Context(), stateToken)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"Could not match state token", err)
		return
	}

	token, err := google.GetGoogleToken(request.Context(), authCode)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusServiceUnavailable,
			"Problem exchanging the auth code", err)
		return
	}

	err = u.GoogleCalendarConnection.SetToken(token)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem encrypting the calendar token", err)
		return
	}

	u.GoogleCalendarConnection.StateToken = ""

	err = handler.UserRepository.Update(request.Context(), u)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist user", err)
		return
	}

	http.Redirect(writer, request, environment.Global.FrontendBaseUrl, http.StatusFound)
}

// CalendarDisconnect drops the stored calendar token
func (handler *Handler) CalendarDisconnect(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	err := handler.UserRepository.ClearCalendarToken(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem trying to persist user", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
