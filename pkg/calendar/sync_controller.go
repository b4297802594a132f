package calendar

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/locking"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
)

const (
	syncInterval = 5 * time.Minute
	syncLockTTL  = time.Minute
)

// SyncController keeps the events of one session in sync with Google Calendar.
// It refetches when the anchor month or the calendar token changes and on a
// fixed interval, guards concurrent fetches per session with a lock, and
// discards responses that arrive after a newer fetch already completed.
type SyncController struct {
	session        *auth.Session
	repository     RepositoryInterface
	cache          EventsCacheInterface
	locker         locking.LockerInterface
	userRepository users.UserRepositoryInterface
	logger         logger.Interface
	interval       time.Duration

	sequence uint64

	mu              sync.Mutex
	applied         uint64
	events          []Event
	anchor          time.Time
	lastSync        time.Time
	lastFingerprint string

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSyncController builds a new SyncController instance
func NewSyncController(session *auth.Session, repository RepositoryInterface, eventsCache EventsCacheInterface, locker locking.LockerInterface, userRepository users.UserRepositoryInterface, log logger.Interface) *SyncController {
	return &SyncController{
		session:        session,
		repository:     repository,
		cache:          eventsCache,
		locker:         locker,
		userRepository: userRepository,
		logger:         log,
		interval:       syncInterval,
		stop:           make(chan struct{}),
	}
}

// Start runs an initial sync and keeps syncing on an interval until Stop
func (c *SyncController) Start(ctx context.Context, anchor time.Time) {
	err := c.sync(ctx, anchor)
	if err != nil {
		c.logger.Warning("Initial calendar sync failed", err)
	}

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				err := c.sync(ctx, c.Anchor())
				if err != nil {
					c.logger.Warning("Periodic calendar sync failed", err)
				}
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the periodic syncing
func (c *SyncController) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

// Refresh syncs when the anchor month or the token changed since the last
// sync, or when the last sync is older than the sync interval
func (c *SyncController) Refresh(ctx context.Context, anchor time.Time) error {
	if !c.needsSync(anchor) {
		return nil
	}

	return c.sync(ctx, anchor)
}

// Events returns the currently synced events
func (c *SyncController) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make([]Event, len(c.events))
	copy(events, c.events)

	return events
}

// Anchor returns the anchor of the current window
func (c *SyncController) Anchor() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anchor.IsZero() {
		return time.Now()
	}

	return c.anchor
}

func (c *SyncController) needsSync(anchor time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.applied == 0 {
		return true
	}

	if c.lastFingerprint != c.session.Fingerprint() {
		return true
	}

	if anchor.Year() != c.anchor.Year() || anchor.Month() != c.anchor.Month() {
		return true
	}

	return time.Since(c.lastSync) >= c.interval
}

func (c *SyncController) sync(ctx context.Context, anchor time.Time) error {
	if !c.session.HasCalendarToken() {
		return nil
	}

	// Ordering guard: a sync started later must never lose to one started earlier
	seq := atomic.AddUint64(&c.sequence, 1)

	lock, err := c.locker.Acquire(ctx, "calendar-sync:"+c.session.Fingerprint(), syncLockTTL)
	if err != nil {
		return err
	}
	defer func() {
		err := lock.Release(ctx)
		if err != nil {
			c.logger.Warning("Problem releasing sync lock", err)
		}
	}()

	events, err := c.repository.FetchWindow(ctx, anchor)
	if errors.Is(err, communication.ErrCalendarAuthInvalid) {
		c.handleAuthError(ctx)
		return err
	}

	if err != nil {
		c.fallbackToCache(ctx, anchor)
		return err
	}

	if c.apply(seq, anchor, events) {
		cacheErr := c.cache.Set(ctx, c.cacheKey(anchor), events)
		if cacheErr != nil {
			c.logger.Warning("Problem caching calendar events", cacheErr)
		}
	}

	return nil
}

// apply installs a fetch result unless a newer one already landed
func (c *SyncController) apply(seq uint64, anchor time.Time, events []Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.applied {
		return false
	}

	c.applied = seq
	c.events = events
	c.anchor = anchor
	c.lastSync = time.Now()
	c.lastFingerprint = c.session.Fingerprint()

	return true
}

// handleAuthError drops the stored token so the user gets prompted to reconnect
func (c *SyncController) handleAuthError(ctx context.Context) {
	err := c.userRepository.ClearCalendarToken(ctx, c.session.UserID)
	if err != nil {
		c.logger.Error("Problem clearing rejected calendar token", err)
	}

	c.session.Invalidate()

	c.mu.Lock()
	c.events = nil
	c.mu.Unlock()

	c.logger.Info("Calendar token rejected, connection dropped for user " + c.session.UserID)
}

// fallbackToCache serves the last known events when a fetch fails transiently
func (c *SyncController) fallbackToCache(ctx context.Context, anchor time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.events) > 0 {
		return
	}

	cached, ok := c.cache.Get(ctx, c.cacheKey(anchor))
	if ok {
		c.events = cached
	}
}

func (c *SyncController) cacheKey(anchor time.Time) string {
	return c.session.Fingerprint() + ":" + anchor.Format("2006-01")
}
