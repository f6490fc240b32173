package ports

import (
	"context"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// CatalogRepository is the persistence contract shared by categories,
// missions and rewards. Missing ids surface as the entity's not-found error.
type CatalogRepository[T any] interface {
	List(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

type (
	CategoryRepository = CatalogRepository[domain.Category]
	MissionRepository  = CatalogRepository[domain.Mission]
	RewardRepository   = CatalogRepository[domain.Reward]
)

// CatalogService exposes read and write operations over one catalog entity.
type CatalogService[T any] interface {
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id string, item T) (*T, error)
	Delete(ctx context.Context, id string) error
}
