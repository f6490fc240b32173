package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

type cacheAdmin struct {
	cache ports.Cache
}

// NewCacheAdmin returns a CacheAdmin over the fixed set of named caches.
func NewCacheAdmin(cache ports.Cache) ports.CacheAdmin {
	return &cacheAdmin{cache: cache}
}

func (a *cacheAdmin) Names() []string {
	return slices.Clone(domain.CacheNames)
}

// ClearAll empties every named cache, continuing past individual failures.
func (a *cacheAdmin) ClearAll(ctx context.Context) error {
	var errs []error
	for _, name := range domain.CacheNames {
		if err := a.cache.Clear(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (a *cacheAdmin) ClearCache(ctx context.Context, name string) error {
	if !slices.Contains(domain.CacheNames, name) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCache, name)
	}
	if err := a.cache.Clear(ctx, name); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	return nil
}
