package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations. Values are
// opaque encoded bytes so every backend round-trips the same types.
type CacheInterface interface {
	// Get returns the stored bytes and true on a hit
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	Delete(ctx context.Context, keys ...string)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
