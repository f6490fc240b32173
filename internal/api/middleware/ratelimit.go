package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how many requests one client IP may send per window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Enabled reports whether the limit should be applied at all.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerWindow > 0 && c.Window > 0
}

// RateLimit throttles requests per client IP as resolved by the echo
// instance's IPExtractor. Rejected requests get 429 with a Retry-After header
// covering one refill interval.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.RequestsPerWindow
	}
	interval := cfg.Window / time.Duration(cfg.RequestsPerWindow)
	retryAfter := strconv.Itoa(max(int(interval.Seconds()), 1))

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(interval),
		Burst:     burst,
		ExpiresIn: cfg.Window,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			c.Response().Header().Set("Retry-After", retryAfter)
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}
