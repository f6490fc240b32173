package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecoquest/sustainability-api/internal/api/metrics"
	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// PrincipalLookup resolves a login key to a stored user.
type PrincipalLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// outcome is the terminal state of one authentication attempt. Only
// outcomeAuthenticated installs a principal; every other value means the
// request continues anonymously.
type outcome string

const (
	outcomeAuthenticated    outcome = "authenticated"
	outcomeNoToken          outcome = "no_token"
	outcomeInvalidToken     outcome = "invalid_token"
	outcomeUnknownPrincipal outcome = "unknown_principal"
	outcomeMissingRole      outcome = "missing_role"
	outcomeLookupFailed     outcome = "lookup_failed"
	outcomeInternalError    outcome = "internal_error"
)

type gateway struct {
	tokens ports.TokenVerifier
	users  PrincipalLookup
	log    zerolog.Logger
}

// Authenticate establishes the request principal from an optional bearer
// token. It never rejects a request: missing, invalid or expired tokens and
// unknown or role-less users all fall through anonymously, leaving the
// accept/reject decision to RequireAuthenticated and RequireAuthority.
func Authenticate(tokens ports.TokenVerifier, users PrincipalLookup, log zerolog.Logger) echo.MiddlewareFunc {
	g := &gateway{tokens: tokens, users: users, log: log}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			p, out := g.resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			metrics.AuthOutcomesTotal.WithLabelValues(string(out)).Inc()

			if out == outcomeAuthenticated {
				c.SetRequest(req.WithContext(WithPrincipal(req.Context(), p)))
			} else if out != outcomeNoToken {
				g.log.Debug().
					Str("outcome", string(out)).
					Str("path", req.URL.Path).
					Msg("continuing anonymously")
			}

			return next(c)
		}
	}
}

// resolve folds every step of the authentication state machine into a
// single outcome.
func (g *gateway) resolve(ctx context.Context, header string) (p domain.Principal, out outcome) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Msg("authentication aborted")
			p, out = domain.Principal{}, outcomeInternalError
		}
	}()

	token, ok := extractToken(header)
	if !ok {
		return domain.Principal{}, outcomeNoToken
	}

	loginKey, err := g.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, outcomeInvalidToken
	}

	user, err := g.users.FindByEmail(ctx, loginKey)
	switch {
	case errors.Is(err, domain.ErrUserNotFound), err == nil && user == nil:
		return domain.Principal{}, outcomeUnknownPrincipal
	case err != nil:
		g.log.Warn().Err(err).Msg("principal lookup failed")
		return domain.Principal{}, outcomeLookupFailed
	}

	p, ok = domain.NewPrincipal(user)
	if !ok {
		return domain.Principal{}, outcomeMissingRole
	}
	return p, outcomeAuthenticated
}

// extractToken pulls the candidate token out of an Authorization header. A
// case-insensitive "Bearer " scheme is stripped; any other value is taken as
// a bare token.
func extractToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	var token string
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(header[len(bearerPrefix):])
	} else {
		token = strings.TrimSpace(header)
	}
	return token, token != ""
}
