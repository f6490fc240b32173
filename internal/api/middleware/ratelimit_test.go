package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newRateLimitedEcho(cfg RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimit(cfg))
	return e
}

func postLogin(e *echo.Echo, remoteIP, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remoteIP + ":40000"
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	e := newRateLimitedEcho(RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		if rec := postLogin(e, "10.0.0.1", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, rec.Code)
		}
	}

	rec := postLogin(e, "10.0.0.1", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}

	if rec := postLogin(e, "10.0.0.2", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("other client should not be throttled, got %d", rec.Code)
	}
}

func TestRateLimit_IgnoresForwardedFor(t *testing.T) {
	e := newRateLimitedEcho(RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute})

	throttled := 0
	for i := 0; i < 20; i++ {
		rec := postLogin(e, "203.0.113.9", fmt.Sprintf("198.51.100.%d", i))
		if rec.Code == http.StatusTooManyRequests {
			throttled++
		}
	}
	if throttled != 18 {
		t.Fatalf("expected 18 throttled requests from one peer, got %d", throttled)
	}
}

func TestRateLimitConfig_Enabled(t *testing.T) {
	if (RateLimitConfig{}).Enabled() {
		t.Fatal("zero config must be disabled")
	}
	if !(RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute}).Enabled() {
		t.Fatal("expected enabled")
	}
}
