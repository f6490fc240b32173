package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for task-created events.
// Key format: dedup:task-created:<task_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether the event for taskID has already been handled.
func (d *DedupChecker) IsDuplicate(ctx context.Context, taskID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(taskID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the event for taskID has been handled (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, taskID string) error {
	return d.client.Set(ctx, d.key(taskID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(taskID string) string {
	return "dedup:task-created:" + taskID
}
