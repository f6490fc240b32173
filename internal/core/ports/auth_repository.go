package ports

import (
	"context"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// UserRepository is the credential store. FindByEmail matches the login key
// case-sensitively and returns domain.ErrUserNotFound when absent.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
