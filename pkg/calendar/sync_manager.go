package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/locking"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
)

// SyncManager hands out one SyncController per signed in user. A controller
// is rebuilt when the user reconnects with a different token and dropped when
// the connection goes away.
type SyncManager struct {
	UserRepository users.UserRepositoryInterface
	Cache          EventsCacheInterface
	Locker         locking.LockerInterface
	Logger         logger.Interface

	// NewRepository builds the calendar access for a user, swapped out in tests
	NewRepository func(ctx context.Context, u *users.User) (RepositoryInterface, error)

	mu          sync.Mutex
	controllers map[string]*SyncController
}

// NewSyncManager builds a new SyncManager instance
func NewSyncManager(userRepository users.UserRepositoryInterface, eventsCache EventsCacheInterface, locker locking.LockerInterface, log logger.Interface, newRepository func(ctx context.Context, u *users.User) (RepositoryInterface, error)) *SyncManager {
	return &SyncManager{
		UserRepository: userRepository,
		Cache:          eventsCache,
		Locker:         locker,
		Logger:         log,
		NewRepository:  newRepository,
		controllers:    make(map[string]*SyncController),
	}
}

// ControllerFor returns the sync controller of a user, nil when the user has
// no calendar connected
func (m *SyncManager) ControllerFor(ctx context.Context, userID string) (*SyncController, error) {
	u, err := m.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.GoogleCalendarConnection.EncryptedToken == "" {
		m.Drop(userID)
		return nil, nil
	}

	token, err := u.GoogleCalendarConnection.Token()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	controller, ok := m.controllers[userID]
	m.mu.Unlock()

	if ok {
		current := controller.session.CalendarToken()
		if current != nil && current.AccessToken == token.AccessToken {
			return controller, nil
		}

		// Reconnected with a fresh token, the old controller is stale
		m.Drop(userID)
	}

	repository, err := m.NewRepository(ctx, u)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(userID, token)
	controller = NewSyncController(session, repository, m.Cache, m.Locker, m.UserRepository, m.Logger)

	m.mu.Lock()
	m.controllers[userID] = controller
	m.mu.Unlock()

	go controller.Start(context.Background(), time.Now())

	return controller, nil
}

// Drop stops and removes the controller of a user
func (m *SyncManager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	controller, ok := m.controllers[userID]
	if !ok {
		return
	}

	controller.Stop()
	delete(m.controllers, userID)
}
