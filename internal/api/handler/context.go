package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/api/middleware"
	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// ctxPrincipal returns the principal installed by the authentication
// gateway. Routes behind RequireAuthenticated always have one; the 401 covers
// handlers mounted without it.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return p, nil
}

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
