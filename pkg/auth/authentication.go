package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/dayboard-app/dayboard-backend/pkg/auth/jwt"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/environment"
	"golang.org/x/oauth2"
)

type key string

const (
	// KeyUserID the key for the request variable for getting the user id
	KeyUserID key = "userID"
)

// AuthenticationMiddleware checks if the user login token is valid and responds with an error if it's not the case
type AuthenticationMiddleware struct {
	ErrorManager *communication.ResponseManager
}

// Middleware gets called when a request needs to be authenticated
func (m *AuthenticationMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {
		extractedToken, err := extractTokenStringFromHeader(r)
		if err != nil {
			m.ErrorManager.RespondWithError(writer, http.StatusUnauthorized, "No authorization", err)
			return
		}

		token, err := jwt.Verify(extractedToken, jwt.TokenTypeAccess, environment.Global.Secret, jwt.AlgHS256)
		if err != nil {
			m.ErrorManager.RespondWithError(writer, http.StatusUnauthorized, "Token invalid", err)
			return
		}

		newContext := context.WithValue(r.Context(), KeyUserID, token.Payload.Subject)
		next.ServeHTTP(writer, r.WithContext(newContext))
	})
}

func extractTokenStringFromHeader(r *http.Request) (string, error) {
	nonformatted := r.Header.Get("Authorization")
	if strings.TrimSpace(nonformatted) == "" {
		return "", errors.New("no authorization token specified")
	}

	tokenParts := strings.Fields(nonformatted)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", errors.New("token must be a bearer token")
	}

	return tokenParts[1], nil
}

// Session is the explicit auth state of one signed-in user. It gets created
// on sign-in, handed by reference to every component acting on the user's
// behalf, and invalidated on sign-out or when the calendar provider rejects
// the token.
type Session struct {
	UserID string

	mu            sync.Mutex
	calendarToken *oauth2.Token
}

// NewSession builds a Session for a user with an optional calendar token
func NewSession(userID string, calendarToken *oauth2.Token) *Session {
	return &Session{UserID: userID, calendarToken: calendarToken}
}

// CalendarToken returns the current calendar token, nil after invalidation
func (s *Session) CalendarToken() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calendarToken
}

// SetCalendarToken replaces the calendar token, e.g. after a refresh
func (s *Session) SetCalendarToken(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calendarToken = token
}

// Invalidate drops the calendar token, forcing re-authentication before the
// next calendar action
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calendarToken = nil
}

// HasCalendarToken reports whether a calendar token is present
func (s *Session) HasCalendarToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calendarToken != nil && s.calendarToken.AccessToken != ""
}

// Fingerprint identifies the (user, token) pair for locking and staleness
// checks without exposing the token itself
func (s *Session) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calendarToken == nil {
		return s.UserID
	}

	if len(s.calendarToken.AccessToken) < 8 {
		return s.UserID + ":" + s.calendarToken.AccessToken
	}

	return s.UserID + ":" + s.calendarToken.AccessToken[:8]
}
