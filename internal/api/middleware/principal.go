package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal installed by Authenticate, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// PrincipalFrom is PrincipalFromContext for an echo request.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	return PrincipalFromContext(c.Request().Context())
}
