package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// listKey is the cache key every full listing is stored under.
const listKey = "all"

// cacheLayer fronts a store with a ports.Cache. Cache failures are logged and
// bypassed; the store stays the source of truth. A nil cache disables caching.
type cacheLayer struct {
	cache ports.Cache
	log   zerolog.Logger
}

// readThrough returns the cached value for name/key, or loads it and fills
// the cache on a miss.
func readThrough[T any](ctx context.Context, c cacheLayer, name, key string, load func(context.Context) (T, error)) (T, error) {
	if c.cache != nil {
		var cached T
		found, err := c.cache.Get(ctx, name, key, &cached)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Str("cache", name).Str("key", key).Msg("cache read failed")
		case found:
			return cached, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, name, key, v); err != nil {
			c.log.Warn().Err(err).Str("cache", name).Str("key", key).Msg("cache write failed")
		}
	}
	return v, nil
}

func (c cacheLayer) evict(ctx context.Context, name string, keys ...string) {
	if c.cache == nil {
		return
	}
	for _, key := range keys {
		if err := c.cache.Evict(ctx, name, key); err != nil {
			c.log.Warn().Err(err).Str("cache", name).Str("key", key).Msg("cache evict failed")
		}
	}
}

func (c cacheLayer) clear(ctx context.Context, name string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Clear(ctx, name); err != nil {
		c.log.Warn().Err(err).Str("cache", name).Msg("cache clear failed")
	}
}
