package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

type taskFixture struct {
	svc       ports.TaskService
	tasks     *stubTaskRepo
	cache     *stubCache
	publisher *stubPublisher
	userID    string
	missionID string
	catID     string
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	ctx := context.Background()

	users := newStubUserRepo()
	u, err := users.Create(ctx, &domain.User{Email: "ana@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	missions := newStubMissions()
	m, err := missions.Create(ctx, &domain.Mission{Name: "Zero waste week", Active: true})
	require.NoError(t, err)

	categories := newStubCategories()
	c, err := categories.Create(ctx, &domain.Category{Name: "Recycling", ImpactLevel: domain.ImpactHigh})
	require.NoError(t, err)

	f := &taskFixture{
		tasks:     newStubTaskRepo(),
		cache:     newStubCache(),
		publisher: &stubPublisher{},
		userID:    u.ID,
		missionID: m.ID,
		catID:     c.ID,
	}
	f.svc = NewTaskService(TaskDeps{
		Tasks:      f.tasks,
		Missions:   missions,
		Categories: categories,
		Users:      users,
		Publisher:  f.publisher,
		Cache:      f.cache,
	}, zerolog.Nop())
	return f
}

func (f *taskFixture) input(title string) ports.TaskInput {
	return ports.TaskInput{
		Title:      title,
		MissionID:  f.missionID,
		CategoryID: f.catID,
		UserID:     f.userID,
	}
}

func TestTaskService_Create(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.Create(context.Background(), f.input("Sort the recycling"))
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.DefaultTaskPoints, task.Points)
	assert.False(t, task.CreatedOn.IsZero())

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Equal(t, task.ID, ev.TaskID)
	assert.Equal(t, "Sort the recycling", ev.Title)
	assert.Equal(t, f.userID, ev.UserID)
	assert.Equal(t, f.catID, ev.CategoryID)
}

func TestTaskService_Create_PublishFailureIsNotFatal(t *testing.T) {
	f := newTaskFixture(t)
	f.publisher.err = errors.New("redis down")

	task, err := f.svc.Create(context.Background(), f.input("Bike to work"))
	require.NoError(t, err)
	assert.Contains(t, f.tasks.tasks, task.ID)
}

func TestTaskService_Create_RequiresLinks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ports.TaskInput)
		want   error
	}{
		{"unknown mission", func(in *ports.TaskInput) { in.MissionID = "nope" }, domain.ErrMissionNotFound},
		{"unknown category", func(in *ports.TaskInput) { in.CategoryID = "nope" }, domain.ErrCategoryNotFound},
		{"unknown user", func(in *ports.TaskInput) { in.UserID = "nope" }, domain.ErrUserNotFound},
		{"negative points", func(in *ports.TaskInput) { in.Points = -1 }, domain.ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskFixture(t)
			in := f.input("x")
			tt.mutate(&in)

			_, err := f.svc.Create(context.Background(), in)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.tasks.tasks)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestTaskService_ListReadThrough(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.input("a"))
	require.NoError(t, err)

	first, err := f.svc.List(ctx)
	require.NoError(t, err)
	second, err := f.svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, f.tasks.listCalls)
	assert.Equal(t, first[0].ID, second[0].ID)

	// A write clears listings, so the next read hits the store again.
	_, err = f.svc.Create(ctx, f.input("b"))
	require.NoError(t, err)
	third, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, f.tasks.listCalls)
}

func TestTaskService_CacheFailureFallsBackToStore(t *testing.T) {
	f := newTaskFixture(t)
	f.cache.failGet = true
	f.cache.failSet = true

	_, err := f.svc.Create(context.Background(), f.input("a"))
	require.NoError(t, err)

	tasks, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_ListPage(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := f.svc.Create(ctx, f.input(title))
		require.NoError(t, err)
	}

	page, err := f.svc.ListPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.First)
	assert.True(t, page.Last)
	assert.True(t, f.cache.has(domain.CacheTasks, "page:1:size:2"))

	for _, bad := range [][2]int{{-1, 10}, {0, 0}, {0, 101}} {
		_, err := f.svc.ListPage(ctx, bad[0], bad[1])
		assert.ErrorIs(t, err, domain.ErrInvalidPagination)
	}
}

func TestTaskService_Update(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.input("a"))
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, f.cache.has(domain.CacheTask, created.ID))

	updated, err := f.svc.Update(ctx, created.ID, ports.TaskInput{
		Title:     "a (done)",
		Completed: true,
		Points:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, "a (done)", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, 25, updated.Points)
	assert.Equal(t, f.catID, updated.CategoryID, "category kept when not supplied")
	assert.Equal(t, f.userID, updated.UserID, "user kept when not supplied")
	assert.Equal(t, created.CreatedOn, updated.CreatedOn)
	assert.False(t, f.cache.has(domain.CacheTask, created.ID))

	_, err = f.svc.Update(ctx, created.ID, ports.TaskInput{Title: "x", CategoryID: "nope"})
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestTaskService_Update_KeepsUnsetPointsAndDate(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	in := f.input("compost")
	in.Points = 50
	in.CreatedOn = time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)
	created, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, ports.TaskInput{Title: "compost", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Points)
	assert.Equal(t, in.CreatedOn, updated.CreatedOn)

	moved := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err = f.svc.Update(ctx, created.ID, ports.TaskInput{Title: "compost", CreatedOn: moved})
	require.NoError(t, err)
	assert.Equal(t, moved, updated.CreatedOn)
	assert.Equal(t, 50, updated.Points)

	_, err = f.svc.Update(ctx, created.ID, ports.TaskInput{Title: "compost", Points: -1})
	require.ErrorIs(t, err, domain.ErrInvalidPoints)
}

func TestTaskService_Delete(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.input("a"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	_, err = f.svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.ErrorIs(t, f.svc.Delete(ctx, created.ID), domain.ErrTaskNotFound)
}

func TestTaskService_CreatedOnIsKept(t *testing.T) {
	f := newTaskFixture(t)
	in := f.input("a")
	in.CreatedOn = time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	task, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.CreatedOn, task.CreatedOn)
}
