package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, taskID string) (bool, error)
	Mark(ctx context.Context, taskID string) error
}

type taskEventHandler struct {
	dedup DedupChecker
	log   zerolog.Logger
}

// NewTaskEventHandler returns the consumer of task-created notifications.
// dedup may be nil.
func NewTaskEventHandler(dedup DedupChecker, log zerolog.Logger) ports.TaskEventHandler {
	return &taskEventHandler{dedup: dedup, log: log}
}

func (h *taskEventHandler) HandleTaskCreated(ctx context.Context, event domain.TaskCreatedEvent) error {
	if event.TaskID == "" {
		return fmt.Errorf("handle task created: missing task id")
	}

	// Idempotency check — silently skip duplicates.
	if h.dedup != nil {
		isDup, err := h.dedup.IsDuplicate(ctx, event.TaskID)
		if err != nil {
			h.log.Warn().Err(err).Str("task_id", event.TaskID).Msg("dedup check failed, processing anyway")
		} else if isDup {
			h.log.Debug().Str("task_id", event.TaskID).Msg("duplicate task event skipped")
			return nil
		}
		if err := h.dedup.Mark(ctx, event.TaskID); err != nil {
			h.log.Warn().Err(err).Str("task_id", event.TaskID).Msg("failed to set dedup key")
		}
	}

	h.log.Info().
		Str("task_id", event.TaskID).
		Str("title", event.Title).
		Str("user_id", event.UserID).
		Str("category_id", event.CategoryID).
		Time("created_at", event.CreatedAt).
		Msg("task created event received")
	return nil
}
