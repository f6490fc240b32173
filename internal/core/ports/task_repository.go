package ports

import (
	"context"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	// ListPage returns one zero-based page and the total number of tasks.
	ListPage(ctx context.Context, page, size int) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
