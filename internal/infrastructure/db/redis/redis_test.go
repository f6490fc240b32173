package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: m.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return m, client
}

func TestConnect_Unreachable(t *testing.T) {
	m := miniredis.RunT(t)
	addr := m.Addr()
	m.Close()

	_, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	require.Error(t, err)
}

func TestCache_GetSet(t *testing.T) {
	m, client := newTestClient(t)
	c := NewCache(client, time.Minute)
	ctx := context.Background()

	var got domain.Task
	found, err := c.Get(ctx, domain.CacheTask, "t1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := domain.Task{ID: "t1", Title: "Compost", Points: 10}
	require.NoError(t, c.Set(ctx, domain.CacheTask, "t1", want))
	assert.True(t, m.Exists("cache:task:t1"))

	found, err = c.Get(ctx, domain.CacheTask, "t1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want.Title, got.Title)

	m.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, domain.CacheTask, "t1", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after ttl")
}

func TestCache_CorruptEntry(t *testing.T) {
	m, client := newTestClient(t)
	c := NewCache(client, time.Minute)
	require.NoError(t, m.Set("cache:task:t1", "{not json"))

	var got domain.Task
	found, err := c.Get(context.Background(), domain.CacheTask, "t1", &got)
	require.Error(t, err)
	assert.False(t, found)
}

func TestCache_EvictAndClear(t *testing.T) {
	m, client := newTestClient(t)
	c := NewCache(client, 0)
	ctx := context.Background()

	for i := range 250 {
		require.NoError(t, c.Set(ctx, domain.CacheTasks, fmt.Sprintf("page:%d:size:10", i), []string{}))
	}
	require.NoError(t, c.Set(ctx, domain.CacheTask, "t1", "x"))

	require.NoError(t, c.Evict(ctx, domain.CacheTask, "t1"))
	assert.False(t, m.Exists("cache:task:t1"))

	require.NoError(t, c.Set(ctx, domain.CacheTask, "t2", "x"))
	require.NoError(t, c.Clear(ctx, domain.CacheTasks))

	keys, err := client.Keys(ctx, "cache:tasks:*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, m.Exists("cache:task:t2"), "clearing tasks must not touch task")
}

func TestDedupChecker(t *testing.T) {
	m, client := newTestClient(t)
	d := NewDedupChecker(client)
	ctx := context.Background()

	dup, err := d.IsDuplicate(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, dup)

	require.NoError(t, d.Mark(ctx, "t1"))
	dup, err = d.IsDuplicate(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, dup)

	m.FastForward(dedupTTL + time.Second)
	dup, err = d.IsDuplicate(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, dup)
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.TaskCreatedEvent
	got    chan struct{}
}

func (s *recordingSink) Enqueue(_ context.Context, e domain.TaskCreatedEvent) error {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
	s.got <- struct{}{}
	return nil
}

func TestTaskEvents_PublishSubscribe(t *testing.T) {
	_, client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{got: make(chan struct{}, 4)}
	sub := NewTaskEventSubscriber(client, "tasks.created", sink, zerolog.Nop())
	require.NoError(t, sub.Start(ctx))

	// Garbage on the channel is dropped without stopping the consumer.
	require.NoError(t, client.Publish(ctx, "tasks.created", "not json").Err())

	pub := NewTaskEventPublisher(client, "tasks.created")
	event := domain.TaskCreatedEvent{
		TaskID:    "t1",
		Title:     "Plant a tree",
		UserID:    "u1",
		CreatedAt: time.Date(2026, 4, 22, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishTaskCreated(ctx, event))

	select {
	case <-sink.got:
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	sink.mu.Lock()
	require.Len(t, sink.events, 1)
	assert.Equal(t, event, sink.events[0])
	sink.mu.Unlock()

	cancel()
	sub.Wait()
}

func TestTaskEventPublisher_Failure(t *testing.T) {
	m, client := newTestClient(t)
	m.Close()

	pub := NewTaskEventPublisher(client, "tasks.created")
	require.Error(t, pub.PublishTaskCreated(context.Background(), domain.TaskCreatedEvent{TaskID: "t1"}))
}
