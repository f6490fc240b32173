package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	cache  cacheLayer
	log    zerolog.Logger
	now    func() time.Time

	// decoy is compared against when the login key is unknown so both
	// failure paths pay for one hash verification.
	decoyOnce sync.Once
	decoy     string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	cache ports.Cache,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		cache:  cacheLayer{cache: cache, log: log},
		log:    log,
		now:    time.Now,
	}
}

// Register creates a user with the caller-supplied role.
//
// Any caller may register as ADMIN. This mirrors the public registration
// contract the API has always exposed; restricting it needs an explicit
// authorization rule on the route.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.cache.evict(ctx, domain.CacheUsers, listKey)
	if role == domain.RoleAdmin {
		s.log.Warn().Str("user_id", created.ID).Msg("self-registered administrator")
	}
	return created, nil
}

// Login verifies the credentials and issues a token for the user's email.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Verify(password, s.decoyHash())
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: lookup: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash("decoy-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("decoy hash unavailable")
			return
		}
		s.decoy = h
	})
	return s.decoy
}
