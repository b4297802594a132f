package notes

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

// Handler handles all sticky note related API calls
type Handler struct {
	NoteRepository  NoteRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// NoteAdd is the route for adding a sticky note
func (handler *Handler) NoteAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	note := StickyNote{}

	err := json.NewDecoder(request.Body).Decode(&note)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	note.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	err = handler.NoteRepository.AddNote(request.Context(), &note)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Note couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, &note, http.StatusCreated)
}

// GetAllNotes is the route for getting all sticky notes of a user
func (handler *Handler) GetAllNotes(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	notes, err := handler.NoteRepository.FindAllNotes(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem retrieving notes", err)
		return
	}

	handler.ResponseManager.Respond(writer, notes)
}

// NoteUpdate is the route for updating a sticky note
func (handler *Handler) NoteUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	noteID := mux.Vars(request)["noteID"]

	note := StickyNote{}

	err := json.NewDecoder(request.Body).Decode(&note)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	note.ID, err = primitive.ObjectIDFromHex(noteID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Problem parsing the note id", err)
		return
	}

	note.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	err = handler.NoteRepository.UpdateNote(request.Context(), &note)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem updating the note", err)
		return
	}

	handler.ResponseManager.Respond(writer, &note)
}

// NoteDelete deletes a sticky note
func (handler *Handler) NoteDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	noteID := mux.Vars(request)["noteID"]

	err := handler.NoteRepository.DeleteNote(request.Context(), noteID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem deleting the note", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// FolderAdd is the route for adding a folder
func (handler *Handler) FolderAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	folder := Folder{}

	err := json.NewDecoder(request.Body).Decode(&folder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	folder.UserID, err = primitive.ObjectIDFromHex(userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem parsing the user id", err)
		return
	}

	v := validator.New()
	err = v.Struct(folder)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.NoteRepository.AddFolder(request.Context(), &folder)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Folder couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, &folder, http.StatusCreated)
}

// GetAllFolders is the route for getting all folders of a user
func (handler *Handler) GetAllFolders(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	folders, err := handler.NoteRepository.FindAllFolders(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem retrieving folders", err)
		return
	}

	handler.ResponseManager.Respond(writer, folders)
}

// FolderDelete deletes a folder and detaches its notes
func (handler *Handler) FolderDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	folderID := mux.Vars(request)["folderID"]

	err := handler.NoteRepository.DeleteFolder(request.Context(), folderID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem deleting the folder", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
