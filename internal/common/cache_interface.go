package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations.
// Values round-trip through JSON so both backends hand back the same types.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(ctx context.Context, key string, value any, duration time.Duration) error

	// Get decodes the cached value into dest.
	// Returns true if the key was found
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
