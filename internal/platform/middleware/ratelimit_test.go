package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/platform/auth"
)

func rateLimitRequest(t *testing.T, mw echo.MiddlewareFunc, userID, ip string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guias", nil)
	req.RemoteAddr = ip + ":1234"
	if userID != "" {
		ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRateLimit_WithinLimit(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})

	for i := 0; i < 5; i++ {
		rec := rateLimitRequest(t, mw, "user-1", "10.0.0.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestRateLimit_ExceedsBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	rateLimitRequest(t, mw, "user-1", "10.0.0.1")
	rateLimitRequest(t, mw, "user-1", "10.0.0.1")
	rec := rateLimitRequest(t, mw, "user-1", "10.0.0.1")

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected remaining 0, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_UsersHaveSeparateBuckets(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	if rec := rateLimitRequest(t, mw, "user-1", "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("user-1 first request: expected 200, got %d", rec.Code)
	}
	if rec := rateLimitRequest(t, mw, "user-1", "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("user-1 second request: expected 429, got %d", rec.Code)
	}
	// Same IP, different subject: separate bucket.
	if rec := rateLimitRequest(t, mw, "user-2", "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("user-2 first request: expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_AnonymousKeyedByIP(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	if rec := rateLimitRequest(t, mw, "", "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := rateLimitRequest(t, mw, "", "10.0.0.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same ip: expected 429, got %d", rec.Code)
	}
	if rec := rateLimitRequest(t, mw, "", "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("request from other ip: expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_SetsLimitHeader(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 50, BurstSize: 50})

	rec := rateLimitRequest(t, mw, "user-1", "10.0.0.1")
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "50" {
		t.Errorf("expected limit header 50, got %q", got)
	}
}

func TestTokenBucket_RetryAfterWithZeroRate(t *testing.T) {
	b := newTokenBucket(0, 1)
	b.allow()
	if got := b.retryAfter(); got != 1 {
		t.Errorf("expected retry-after 1 with zero refill rate, got %d", got)
	}
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond <= 0 || cfg.BurstSize <= 0 {
		t.Errorf("default config must be positive, got %+v", cfg)
	}
}
