package ports

import (
	"context"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// UpdateUserInput edits a user's profile. Empty fields keep the stored
// value; a non-empty Password is re-hashed.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
