// Package cache provides a small read-through cache for values that are cheap to
// recompute but read on every request, such as the itinerary context lists.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values by key
type Cache interface {
	// Get decodes the value for key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// GetOrLoad returns the cached value for key, or calls load and caches its result.
// Cache failures never fail the call; they only bypass the cache.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if found, err := c.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	_ = c.Set(ctx, key, value, ttl)
	return value, nil
}
