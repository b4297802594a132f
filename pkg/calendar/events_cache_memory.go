package calendar

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

// EventsCacheMemory is an in process EventsCacheInterface backed by an LRU
type EventsCacheMemory struct {
	cache *lru.Cache
}

// NewEventsCacheMemory builds a new EventsCacheMemory instance
func NewEventsCacheMemory(size int) (*EventsCacheMemory, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &EventsCacheMemory{cache: cache}, nil
}

// Get returns the cached events for a key
func (c *EventsCacheMemory) Get(_ context.Context, key string) ([]Event, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}

	events, ok := value.([]Event)
	return events, ok
}

// Set caches events for a key
func (c *EventsCacheMemory) Set(_ context.Context, key string, events []Event) error {
	c.cache.Add(key, events)
	return nil
}
