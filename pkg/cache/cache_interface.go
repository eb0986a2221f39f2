package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract backing request counters.
// Implementations: Redis (infrastructure/cache).
type Cache interface {
	// Increment adds one to key, creating it at 1
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets key's time to live
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining time to live; negative when key has no
	// expiry or does not exist
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the connection
	Ping(ctx context.Context) error
}

// HitWindow counts one hit in a fixed window starting at the first hit.
// It returns the hit count and the time left in the window.
func HitWindow(ctx context.Context, c Cache, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := c.Increment(ctx, key)
	if err != nil {
		return 0, 0, err
	}

	ttl, err := c.TTL(ctx, key)
	if err != nil {
		return 0, 0, err
	}

	// First hit, or a key that lost its expiry
	if count == 1 || ttl < 0 {
		if err := c.Expire(ctx, key, window); err != nil {
			return 0, 0, err
		}
		ttl = window
	}

	return count, ttl, nil
}
