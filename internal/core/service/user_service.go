package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

type userService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  cacheLayer
	now    func() time.Time
}

// NewUserService returns a UserService. Only the full listing is cached;
// single users are always read from the store.
func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.Cache, log zerolog.Logger) ports.UserService {
	return &userService{
		repo:   repo,
		hasher: hasher,
		cache:  cacheLayer{cache: cache, log: log},
		now:    time.Now,
	}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return readThrough(ctx, s.cache, domain.CacheUsers, listKey, s.repo.List)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		other, err := s.repo.FindByEmail(ctx, in.Email)
		switch {
		case err == nil && other != nil && other.ID != user.ID:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: lookup: %w", err)
		}
		user.Email = in.Email
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Role != "" {
		role, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.cache.evict(ctx, domain.CacheUsers, listKey)
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.evict(ctx, domain.CacheUsers, listKey)
	return nil
}
