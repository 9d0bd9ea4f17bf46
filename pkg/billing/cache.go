package billing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/payflow/pkg/cache"
	"github.com/dmitrymomot/payflow/pkg/logger"
)

const activePricesCacheKey = "plans:active"

// CachedCatalog caches ListActivePrices in a cache.Store.
// GetPrice always reaches the underlying catalog so plan validation sees the live
// active flag. Cache failures are logged and fall through to the catalog.
type CachedCatalog struct {
	next   Catalog
	store  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

// CacheOption configures a CachedCatalog.
type CacheOption func(*CachedCatalog)

// WithCacheLogger sets the logger for cache failures.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *CachedCatalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCachedCatalog wraps next with a listing cache that keeps entries for ttl.
// Panics if next or store is nil.
func NewCachedCatalog(next Catalog, store cache.Store, ttl time.Duration, opts ...CacheOption) *CachedCatalog {
	if next == nil {
		panic("billing: Catalog is required")
	}
	if store == nil {
		panic("billing: cache.Store is required")
	}
	c := &CachedCatalog{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedCatalog) ListActivePrices(ctx context.Context) ([]PlanOffering, error) {
	data, err := c.store.Get(ctx, activePricesCacheKey)
	switch {
	case err == nil:
		var plans []PlanOffering
		decodeErr := json.Unmarshal(data, &plans)
		if decodeErr == nil {
			return plans, nil
		}
		c.warn(ctx, "failed to decode cached prices", decodeErr)
	case !errors.Is(err, cache.ErrCacheMiss):
		c.warn(ctx, "failed to read cached prices", err)
	}

	plans, err := c.next.ListActivePrices(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(plans); err != nil {
		c.warn(ctx, "failed to encode prices for cache", err)
	} else if err := c.store.Set(ctx, activePricesCacheKey, data, c.ttl); err != nil {
		c.warn(ctx, "failed to cache prices", err)
	}

	return plans, nil
}

func (c *CachedCatalog) GetPrice(ctx context.Context, id string) (*PlanOffering, error) {
	return c.next.GetPrice(ctx, id)
}

// Invalidate drops the cached listing.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, activePricesCacheKey)
}

func (c *CachedCatalog) warn(ctx context.Context, msg string, err error) {
	c.logger.WarnContext(ctx, msg, logger.Component("plans_cache"), logger.Error(err))
}
