package ports

import (
	"context"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// TokenIssuer signs a bearer token for a login key.
type TokenIssuer interface {
	Issue(loginKey string) (string, error)
}

// TokenVerifier turns a bearer token back into its login key. Every failure
// is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PasswordHasher is a one-way adaptive password hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
