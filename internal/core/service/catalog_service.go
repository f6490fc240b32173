package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// catalogService serves one catalog entity. listCache holds the listing,
// itemCache holds single entries keyed by id.
type catalogService[T any] struct {
	repo      ports.CatalogRepository[T]
	cache     cacheLayer
	listCache string
	itemCache string
	setID     func(*T, string)
}

func NewCategoryService(repo ports.CategoryRepository, cache ports.Cache, log zerolog.Logger) ports.CatalogService[domain.Category] {
	return &catalogService[domain.Category]{
		repo:      repo,
		cache:     cacheLayer{cache: cache, log: log},
		listCache: domain.CacheCategories,
		itemCache: domain.CacheCategory,
		setID:     func(c *domain.Category, id string) { c.ID = id },
	}
}

func NewMissionService(repo ports.MissionRepository, cache ports.Cache, log zerolog.Logger) ports.CatalogService[domain.Mission] {
	return &catalogService[domain.Mission]{
		repo:      repo,
		cache:     cacheLayer{cache: cache, log: log},
		listCache: domain.CacheMissions,
		itemCache: domain.CacheMission,
		setID:     func(m *domain.Mission, id string) { m.ID = id },
	}
}

func NewRewardService(repo ports.RewardRepository, cache ports.Cache, log zerolog.Logger) ports.CatalogService[domain.Reward] {
	return &catalogService[domain.Reward]{
		repo:      repo,
		cache:     cacheLayer{cache: cache, log: log},
		listCache: domain.CacheRewards,
		itemCache: domain.CacheReward,
		setID:     func(r *domain.Reward, id string) { r.ID = id },
	}
}

func (s *catalogService[T]) List(ctx context.Context) ([]*T, error) {
	return readThrough(ctx, s.cache, s.listCache, listKey, s.repo.List)
}

func (s *catalogService[T]) Get(ctx context.Context, id string) (*T, error) {
	return readThrough(ctx, s.cache, s.itemCache, id, func(ctx context.Context) (*T, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *catalogService[T]) Create(ctx context.Context, item T) (*T, error) {
	s.setID(&item, "")
	created, err := s.repo.Create(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.itemCache, err)
	}
	s.cache.evict(ctx, s.listCache, listKey)
	return created, nil
}

// Update replaces the stored entry with item.
func (s *catalogService[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	s.setID(&item, id)
	updated, err := s.repo.Update(ctx, &item)
	if err != nil {
		return nil, err
	}
	s.cache.evict(ctx, s.itemCache, id)
	s.cache.evict(ctx, s.listCache, listKey)
	return updated, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.evict(ctx, s.itemCache, id)
	s.cache.evict(ctx, s.listCache, listKey)
	return nil
}
