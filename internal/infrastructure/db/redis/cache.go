package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecoquest/sustainability-api/internal/api/metrics"
)

const (
	defaultCacheTTL = 10 * time.Minute
	scanBatch       = 100
)

// Cache is a JSON-valued named cache.
// Key format: cache:<name>:<key>
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a Cache whose entries expire after ttl (10m when ttl <= 0).
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get decodes the entry for name/key into dst. A miss returns false, nil.
func (c *Cache) Get(ctx context.Context, name, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(name, key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheLookupsTotal.WithLabelValues(name, "miss").Inc()
		return false, nil
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues(name, "error").Inc()
		return false, fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(name, "error").Inc()
		return false, fmt.Errorf("cache decode %s: %w", name, err)
	}
	metrics.CacheLookupsTotal.WithLabelValues(name, "hit").Inc()
	return true, nil
}

func (c *Cache) Set(ctx context.Context, name, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", name, err)
	}
	if err := c.client.Set(ctx, c.key(name, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Evict(ctx context.Context, name, key string) error {
	if err := c.client.Del(ctx, c.key(name, key)).Err(); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

// Clear removes every entry of the named cache. SCAN keeps Redis responsive
// on large keyspaces.
func (c *Cache) Clear(ctx context.Context, name string) error {
	iter := c.client.Scan(ctx, 0, c.key(name, "*"), scanBatch).Iterator()

	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("cache clear %s: %w", name, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache clear %s: %w", name, err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("cache clear %s: %w", name, err)
		}
	}
	return nil
}

func (c *Cache) key(name, key string) string {
	return fmt.Sprintf("cache:%s:%s", name, key)
}
