// Package security holds the token codec and the password hasher used by
// the authentication gateway and the login/registration flows.
package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

const (
	// DefaultTokenTTL applies when the configured TTL is not positive.
	DefaultTokenTTL = 2 * time.Hour
	DefaultIssuer   = "ecoquest-api"
)

// TokenCodec issues and verifies HS256 bearer tokens whose subject is the
// user's login key. Its state is fixed at construction and it is safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customises a TokenCodec.
type Option func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) { c.now = now }
}

// WithIssuer sets the issuer claim written and required by the codec.
func WithIssuer(issuer string) Option {
	return func(c *TokenCodec) {
		if issuer != "" {
			c.issuer = issuer
		}
	}
}

// NewTokenCodec returns a codec signing with secret. An empty secret is
// rejected.
func NewTokenCodec(secret string, ttl time.Duration, opts ...Option) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token codec: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: DefaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL is the lifetime of every token this codec issues.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for loginKey valid from now until now+TTL.
func (c *TokenCodec) Issue(loginKey string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   loginKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks structure, signature, issuer and expiry of token and returns
// its login key. Any failure yields domain.ErrInvalidToken so callers cannot
// tell a forged token from an expired one.
func (c *TokenCodec) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
