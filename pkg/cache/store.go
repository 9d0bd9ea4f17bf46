package cache

import (
	"context"
	"time"
)

// Store is a byte cache with per-entry expiration.
type Store interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl means the entry does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
