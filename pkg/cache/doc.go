// Package cache provides small byte-oriented key/value stores with per-entry TTL.
//
// Two implementations satisfy Store:
//
//   - MemoryStore: thread-safe LRU kept in process memory
//   - RedisStore: shared store backed by go-redis, with an optional key prefix
//
// Both return ErrCacheMiss when a key is absent or expired, so callers can treat
// a miss separately from a store failure:
//
//	data, err := store.Get(ctx, "plans:active")
//	switch {
//	case errors.Is(err, cache.ErrCacheMiss):
//		// load from origin and Set
//	case err != nil:
//		// store is unavailable; fall back to origin
//	}
//
// Connect opens a Redis client with retries, and Healthcheck adapts it to a
// readiness probe function.
package cache
