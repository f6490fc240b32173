package ports

import (
	"context"
	"time"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// TaskInput carries the writable fields of a task. On update, empty
// CategoryID and UserID leave the current links untouched, as do zero Points
// and a zero CreatedOn for the stored values.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
	CreatedOn   time.Time
	Points      int
	MissionID   string
	CategoryID  string
	UserID      string
}

type TaskService interface {
	List(ctx context.Context) ([]*domain.Task, error)
	ListPage(ctx context.Context, page, size int) (*domain.Page[*domain.Task], error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, in TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// TaskEventPublisher notifies interested parties about new tasks.
type TaskEventPublisher interface {
	PublishTaskCreated(ctx context.Context, event domain.TaskCreatedEvent) error
}

// TaskEventHandler consumes task-created notifications.
type TaskEventHandler interface {
	HandleTaskCreated(ctx context.Context, event domain.TaskCreatedEvent) error
}
