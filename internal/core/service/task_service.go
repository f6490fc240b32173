package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

const maxPageSize = 100

type taskService struct {
	tasks      ports.TaskRepository
	missions   ports.MissionRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	publisher  ports.TaskEventPublisher
	cache      cacheLayer
	log        zerolog.Logger
	now        func() time.Time
}

// TaskDeps groups the collaborators of the task service.
type TaskDeps struct {
	Tasks      ports.TaskRepository
	Missions   ports.MissionRepository
	Categories ports.CategoryRepository
	Users      ports.UserRepository
	Publisher  ports.TaskEventPublisher
	Cache      ports.Cache
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(deps TaskDeps, log zerolog.Logger) ports.TaskService {
	return &taskService{
		tasks:      deps.Tasks,
		missions:   deps.Missions,
		categories: deps.Categories,
		users:      deps.Users,
		publisher:  deps.Publisher,
		cache:      cacheLayer{cache: deps.Cache, log: log},
		log:        log,
		now:        time.Now,
	}
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return readThrough(ctx, s.cache, domain.CacheTasks, listKey, s.tasks.List)
}

// ListPage returns one zero-based page. size must be within [1, 100].
func (s *taskService) ListPage(ctx context.Context, page, size int) (*domain.Page[*domain.Task], error) {
	if page < 0 || size < 1 || size > maxPageSize {
		return nil, domain.ErrInvalidPagination
	}

	key := fmt.Sprintf("page:%d:size:%d", page, size)
	return readThrough(ctx, s.cache, domain.CacheTasks, key, func(ctx context.Context) (*domain.Page[*domain.Task], error) {
		items, total, err := s.tasks.ListPage(ctx, page, size)
		if err != nil {
			return nil, err
		}
		p := domain.NewPage(items, page, size, total)
		return &p, nil
	})
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return readThrough(ctx, s.cache, domain.CacheTask, id, func(ctx context.Context) (*domain.Task, error) {
		return s.tasks.FindByID(ctx, id)
	})
}

// Create persists a task linked to an existing mission, category and user,
// then announces it. A failed announcement does not fail the request.
func (s *taskService) Create(ctx context.Context, in ports.TaskInput) (*domain.Task, error) {
	points, err := resolvePoints(in.Points)
	if err != nil {
		return nil, err
	}

	// 1. Every link must resolve.
	if _, err := s.missions.FindByID(ctx, in.MissionID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	createdOn := in.CreatedOn
	if createdOn.IsZero() {
		createdOn = s.now().UTC()
	}

	// 2. Persist.
	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedOn:   createdOn,
		Points:      points,
		MissionID:   in.MissionID,
		CategoryID:  in.CategoryID,
		UserID:      in.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	// 3. Listings and pages are stale now.
	s.cache.clear(ctx, domain.CacheTasks)

	// 4. Announce (non-fatal on failure).
	event := domain.TaskCreatedEvent{
		TaskID:     task.ID,
		Title:      task.Title,
		UserID:     task.UserID,
		CategoryID: task.CategoryID,
		CreatedAt:  s.now().UTC(),
	}
	if s.publisher != nil {
		if err := s.publisher.PublishTaskCreated(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("task_id", task.ID).Msg("failed to publish task-created event")
		}
	}

	s.log.Info().Str("task_id", task.ID).Str("user_id", task.UserID).Msg("task created")
	return task, nil
}

// Update rewrites the task's content. Category, user, points and creation
// date change only when supplied.
func (s *taskService) Update(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Points < 0 {
		return nil, domain.ErrInvalidPoints
	}

	if in.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
		task.CategoryID = in.CategoryID
	}
	if in.UserID != "" {
		if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
		task.UserID = in.UserID
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Completed = in.Completed
	if in.Points > 0 {
		task.Points = in.Points
	}
	if !in.CreatedOn.IsZero() {
		task.CreatedOn = in.CreatedOn
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.cache.evict(ctx, domain.CacheTask, id)
	s.cache.clear(ctx, domain.CacheTasks)
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.evict(ctx, domain.CacheTask, id)
	s.cache.clear(ctx, domain.CacheTasks)
	return nil
}

// resolvePoints applies the default for unset points and rejects negatives.
func resolvePoints(p int) (int, error) {
	switch {
	case p == 0:
		return domain.DefaultTaskPoints, nil
	case p < 0:
		return 0, domain.ErrInvalidPoints
	}
	return p, nil
}
