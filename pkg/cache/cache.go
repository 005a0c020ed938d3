package cache

import (
	"context"
	"time"
)

// Cache is the contract for the counter/key-value layer. Implementations:
// Redis (production) and an in-process map (tests, redis-less deployments).
type Cache interface {
	// Increment atomically increments key and returns the new value.
	// A missing key counts from zero.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL for key. Only applied when the key exists.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining lifetime of key, or a negative duration
	// when the key has no expiry or does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
