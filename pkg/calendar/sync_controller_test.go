package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/locking"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

func setupSyncTest(t *testing.T, repository RepositoryInterface) (*SyncController, *users.User, *users.MockUserRepository) {
	t.Helper()

	userRepository := users.MockUserRepository{}

	u := users.User{}
	err := userRepository.Add(context.Background(), &u)
	if err != nil {
		t.Fatal(err)
	}
	u.GoogleCalendarConnection.EncryptedToken = "ciphertext"

	session := auth.NewSession(u.ID.Hex(), &oauth2.Token{AccessToken: "access-token-123"})

	eventsCache, err := NewEventsCacheMemory(16)
	if err != nil {
		t.Fatal(err)
	}

	controller := NewSyncController(session, repository, eventsCache, locking.NewLockerMemory(), &userRepository, logger.Logger{})

	return controller, &u, &userRepository
}

func TestSyncControllerInstallsFetchedEvents(t *testing.T) {
	repository := MockCalendarRepository{
		Events: []Event{
			{CalendarEventID: "a", Title: "Standup"},
			{CalendarEventID: "b", Title: "Review"},
		},
	}

	controller, _, _ := setupSyncTest(t, &repository)

	anchor := time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC)

	err := controller.Refresh(context.Background(), anchor)
	if err != nil {
		t.Fatal(err)
	}

	events := controller.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	cached, ok := controller.cache.Get(context.Background(), controller.cacheKey(anchor))
	if !ok || len(cached) != 2 {
		t.Errorf("expected events to be cached")
	}
}

func TestSyncControllerAuthErrorDropsConnection(t *testing.T) {
	repository := MockCalendarRepository{Err: communication.ErrCalendarAuthInvalid}

	controller, u, _ := setupSyncTest(t, &repository)

	err := controller.Refresh(context.Background(), time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC))
	if err != communication.ErrCalendarAuthInvalid {
		t.Fatalf("expected auth error, got %v", err)
	}

	if u.GoogleCalendarConnection.EncryptedToken != "" {
		t.Errorf("expected stored token to be cleared")
	}

	if controller.session.HasCalendarToken() {
		t.Errorf("expected session to be invalidated")
	}

	if len(controller.Events()) != 0 {
		t.Errorf("expected no events after auth error")
	}
}

func TestSyncControllerWrappedAuthErrorDropsConnection(t *testing.T) {
	repository := MockCalendarRepository{
		Err: errors.Wrap(communication.ErrCalendarAuthInvalid, "listing events"),
	}

	controller, u, _ := setupSyncTest(t, &repository)

	err := controller.Refresh(context.Background(), time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected the auth error to surface")
	}

	if u.GoogleCalendarConnection.EncryptedToken != "" {
		t.Errorf("expected stored token to be cleared for a wrapped auth error")
	}

	if controller.session.HasCalendarToken() {
		t.Errorf("expected session to be invalidated for a wrapped auth error")
	}
}

func TestSyncControllerStopEndsPeriodicSync(t *testing.T) {
	repository := MockCalendarRepository{Events: []Event{{CalendarEventID: "a"}}}

	controller, _, _ := setupSyncTest(t, &repository)
	controller.interval = 10 * time.Millisecond

	controller.Start(context.Background(), time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC))
	time.Sleep(60 * time.Millisecond)

	controller.Stop()
	time.Sleep(20 * time.Millisecond)

	fetches := repository.Fetches()
	if fetches < 2 {
		t.Fatalf("expected the ticker to fetch periodically, got %d fetches", fetches)
	}

	time.Sleep(60 * time.Millisecond)
	if repository.Fetches() != fetches {
		t.Errorf("expected no fetches after Stop")
	}
}

func TestSyncControllerTransientErrorFallsBackToCache(t *testing.T) {
	repository := MockCalendarRepository{Err: errors.New("backend unavailable")}

	controller, _, _ := setupSyncTest(t, &repository)

	anchor := time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC)

	cached := []Event{{CalendarEventID: "a", Title: "Standup"}}
	err := controller.cache.Set(context.Background(), controller.cacheKey(anchor), cached)
	if err != nil {
		t.Fatal(err)
	}

	err = controller.Refresh(context.Background(), anchor)
	if err == nil {
		t.Fatal("expected the fetch error to surface")
	}

	events := controller.Events()
	if len(events) != 1 || events[0].CalendarEventID != "a" {
		t.Errorf("expected cached events to be served")
	}
}

func TestSyncControllerDiscardsStaleResult(t *testing.T) {
	repository := MockCalendarRepository{}

	controller, _, _ := setupSyncTest(t, &repository)

	anchor := time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC)

	newer := []Event{{CalendarEventID: "new"}}
	older := []Event{{CalendarEventID: "old"}}

	if !controller.apply(5, anchor, newer) {
		t.Fatal("expected the newer result to be installed")
	}

	if controller.apply(3, anchor, older) {
		t.Errorf("expected the stale result to be discarded")
	}

	events := controller.Events()
	if len(events) != 1 || events[0].CalendarEventID != "new" {
		t.Errorf("stale result overwrote the newer one")
	}
}

func TestSyncControllerRefreshSkipsUnchangedMonth(t *testing.T) {
	repository := MockCalendarRepository{Events: []Event{{CalendarEventID: "a"}}}

	controller, _, _ := setupSyncTest(t, &repository)

	anchor := time.Date(2022, 3, 9, 0, 0, 0, 0, time.UTC)

	err := controller.Refresh(context.Background(), anchor)
	if err != nil {
		t.Fatal(err)
	}

	err = controller.Refresh(context.Background(), anchor.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	if repository.FetchCalls != 1 {
		t.Errorf("expected 1 fetch for the same month, got %d", repository.FetchCalls)
	}

	err = controller.Refresh(context.Background(), anchor.AddDate(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}

	if repository.FetchCalls != 2 {
		t.Errorf("expected a refetch for a new month, got %d fetches", repository.FetchCalls)
	}
}
