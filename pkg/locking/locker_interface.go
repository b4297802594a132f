package locking

import (
	"context"
	"time"
)

// LockerInterface manages locks, keyed by sync target
type LockerInterface interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (LockInterface, error)
}

// LockInterface is a single acquired lock
type LockInterface interface {
	Key() string
	Release(ctx context.Context) error
}
