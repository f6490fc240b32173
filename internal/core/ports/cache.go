package ports

import "context"

// Cache is a named key/value cache. Get reports a miss with found=false and a
// nil error.
type Cache interface {
	Get(ctx context.Context, name, key string, dst any) (found bool, err error)
	Set(ctx context.Context, name, key string, value any) error
	Evict(ctx context.Context, name, key string) error
	Clear(ctx context.Context, name string) error
}

// CacheAdmin inspects and clears the named caches.
type CacheAdmin interface {
	Names() []string
	ClearAll(ctx context.Context) error
	ClearCache(ctx context.Context, name string) error
}
