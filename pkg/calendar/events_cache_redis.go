package calendar

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
)

const eventsCacheTTL = time.Hour

// EventsCacheRedis is an EventsCacheInterface backed by redis, shared between instances
type EventsCacheRedis struct {
	cache *cache.Cache
}

// NewEventsCacheRedis builds a new EventsCacheRedis instance
func NewEventsCacheRedis(redisClient *redis.Client) *EventsCacheRedis {
	return &EventsCacheRedis{
		cache: cache.New(&cache.Options{
			Redis:      redisClient,
			LocalCache: cache.NewTinyLFU(1000, time.Minute),
		}),
	}
}

// Get returns the cached events for a key
func (c *EventsCacheRedis) Get(ctx context.Context, key string) ([]Event, bool) {
	var events []Event

	err := c.cache.Get(ctx, c.prefixed(key), &events)
	if err != nil {
		return nil, false
	}

	return events, true
}

// Set caches events for a key
func (c *EventsCacheRedis) Set(ctx context.Context, key string, events []Event) error {
	return c.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   c.prefixed(key),
		Value: events,
		TTL:   eventsCacheTTL,
	})
}

func (c *EventsCacheRedis) prefixed(key string) string {
	return "calendar-events:" + key
}
