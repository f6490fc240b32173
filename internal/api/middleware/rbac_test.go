package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

func newRBACContext(p *domain.Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p != nil {
		req = req.WithContext(WithPrincipal(req.Context(), *p))
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func principalWithRole(r domain.Role) *domain.Principal {
	p, ok := domain.NewPrincipal(&domain.User{ID: "u1", Email: "ana@example.com", Role: r})
	if !ok {
		panic("invalid role in test fixture")
	}
	return &p
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestRequireAuthority_Allows(t *testing.T) {
	c := newRBACContext(principalWithRole(domain.RoleAdmin))

	called := false
	handler := RequireAuthority(domain.AuthorityAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireAuthority_AnyOf(t *testing.T) {
	c := newRBACContext(principalWithRole(domain.RoleUser))

	handler := RequireAuthority(domain.AuthorityAdmin, domain.AuthorityUser)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestRequireAuthority_Forbids(t *testing.T) {
	c := newRBACContext(principalWithRole(domain.RoleUser))

	handler := RequireAuthority(domain.AuthorityAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if code := statusOf(t, handler(c)); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAuthority_Anonymous(t *testing.T) {
	c := newRBACContext(nil)

	handler := RequireAuthority(domain.AuthorityAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if code := statusOf(t, handler(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	handler := RequireAuthenticated()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(newRBACContext(principalWithRole(domain.RoleUser))); err != nil {
		t.Fatalf("authenticated request rejected: %v", err)
	}
	if code := statusOf(t, handler(newRBACContext(nil))); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
