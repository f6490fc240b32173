package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
	"github.com/ecoquest/sustainability-api/internal/infrastructure/security"
)

type authFixture struct {
	svc    *AuthService
	repo   *stubUserRepo
	cache  *stubCache
	tokens *security.TokenCodec
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	tokens, err := security.NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewAuthService(repo, security.NewBcryptHasher(bcrypt.MinCost), tokens, cache, zerolog.Nop())
	return &authFixture{svc: svc, repo: repo, cache: cache, tokens: tokens}
}

func (f *authFixture) register(t *testing.T, email, password, role string) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "ana",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "ana@example.com", "pass123", "user")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))
	assert.False(t, user.CreatedAt.IsZero())
}

func TestAuthService_Register_AdminRoleAccepted(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "root@example.com", "pass123", "ADMIN")
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newAuthFixture(t)
	original := f.register(t, "ana@example.com", "pass123", "USER")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "impostor",
		Email:    "ana@example.com",
		Password: "other-pass",
		Role:     "ADMIN",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)

	users, _ := f.repo.List(context.Background())
	require.Len(t, users, 1)
	assert.Equal(t, original, users[0])
}

func TestAuthService_Register_EmailIsCaseSensitive(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@example.com", "pass123", "USER")

	other := f.register(t, "Ana@example.com", "pass123", "USER")
	assert.Equal(t, "Ana@example.com", other.Email)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Email: "ana@example.com", Password: "pass123", Role: "superuser",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAuthService_Register_EvictsUserListing(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.cache.Set(context.Background(), domain.CacheUsers, listKey, []*domain.User{}))

	f.register(t, "ana@example.com", "pass123", "USER")
	assert.False(t, f.cache.has(domain.CacheUsers, listKey))
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@example.com", "pass123", "USER")

	token, user, err := f.svc.Login(context.Background(), "ana@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	loginKey, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", loginKey)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@example.com", "pass123", "USER")

	_, _, wrongPassword := f.svc.Login(context.Background(), "ana@example.com", "wrong")
	_, _, unknownEmail := f.svc.Login(context.Background(), "nobody@example.com", "pass123")
	_, _, emptyPassword := f.svc.Login(context.Background(), "ana@example.com", "")

	for _, err := range []error{wrongPassword, unknownEmail, emptyPassword} {
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.repo.err = errors.New("mongo down")

	_, _, err := f.svc.Login(context.Background(), "ana@example.com", "pass123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
