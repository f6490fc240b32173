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
)

func TestTaskEventHandler(t *testing.T) {
	dedup := &stubDedup{}
	h := NewTaskEventHandler(dedup, zerolog.Nop())
	ev := domain.TaskCreatedEvent{TaskID: "t1", Title: "a", UserID: "u1", CreatedAt: time.Now()}

	require.NoError(t, h.HandleTaskCreated(context.Background(), ev))
	assert.True(t, dedup.seen["t1"])

	// Redelivery is skipped silently.
	require.NoError(t, h.HandleTaskCreated(context.Background(), ev))

	require.Error(t, h.HandleTaskCreated(context.Background(), domain.TaskCreatedEvent{}))
}

func TestTaskEventHandler_DedupFailureStillProcesses(t *testing.T) {
	h := NewTaskEventHandler(&stubDedup{err: errors.New("redis down")}, zerolog.Nop())
	require.NoError(t, h.HandleTaskCreated(context.Background(), domain.TaskCreatedEvent{TaskID: "t1"}))

	h = NewTaskEventHandler(nil, zerolog.Nop())
	require.NoError(t, h.HandleTaskCreated(context.Background(), domain.TaskCreatedEvent{TaskID: "t1"}))
}
