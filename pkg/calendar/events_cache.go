package calendar

import (
	"context"
)

// EventsCacheInterface caches the last fetched window of events per sync target
type EventsCacheInterface interface {
	Get(ctx context.Context, key string) ([]Event, bool)
	Set(ctx context.Context, key string, events []Event) error
}
