package domain

import (
	"errors"
	"time"
)

// DefaultTaskPoints is awarded when a task is created without explicit points.
const DefaultTaskPoints = 10

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidPoints     = errors.New("points must be at least 1")
)

// Task is a unit of sustainable behaviour a user completes to earn points.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedOn   time.Time `json:"created_on"`
	Points      int       `json:"points"`
	MissionID   string    `json:"mission_id"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
}

// TaskCreatedEvent is published once a new task has been persisted.
type TaskCreatedEvent struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Page is one slice of a paginated listing. Page numbers are zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage computes the derived page fields from the total element count.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}
