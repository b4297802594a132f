package locking

import (
	"context"
	"sync"
	"time"
)

// LockerMemory is an in process LockerInterface for single instance setups,
// one mutex per sync target key. TTLs are ignored, a lock is held until
// released.
type LockerMemory struct {
	pool  sync.Pool
	locks sync.Map
}

// NewLockerMemory builds a new LockerMemory instance
func NewLockerMemory() *LockerMemory {
	locker := LockerMemory{
		pool: sync.Pool{
			New: func() interface{} {
				return new(sync.RWMutex)
			},
		},
	}

	return &locker
}

// Acquire blocks until the lock for the key is free and takes it
func (l *LockerMemory) Acquire(_ context.Context, key string, _ time.Duration) (LockInterface, error) {
	mutex := l.mutexFor(key)
	mutex.Lock()

	return &LockMemory{
		key: key,
		release: func() {
			mutex.Unlock()
		},
	}, nil
}

// mutexFor returns the mutex of a key, creating it on first use
func (l *LockerMemory) mutexFor(key string) *sync.RWMutex {
	candidate := l.pool.Get()

	mutex, loaded := l.locks.LoadOrStore(key, candidate)
	if loaded {
		l.pool.Put(candidate)
	}

	return mutex.(*sync.RWMutex)
}

// LockMemory is a held in process lock
type LockMemory struct {
	key     string
	release func()
}

// Key returns the key the lock guards
func (l *LockMemory) Key() string {
	return l.key
}

// Release frees the lock for the next acquirer
func (l *LockMemory) Release(_ context.Context) error {
	l.release()
	return nil
}
