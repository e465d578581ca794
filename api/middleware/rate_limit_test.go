package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLimiter struct {
	allowed bool
	count   int64
	err     error
	scope   string
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	f.scope = scope
	return f.allowed, f.count, f.err
}

func sendLimited(limiter *fakeLimiter, method, path string) (*httptest.ResponseRecorder, bool) {
	mw := RateLimit(limiter, 5, time.Minute, middlewareLogger())
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.9:51234"
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)
	return rec, handlerCalled
}

func TestRateLimitAllows(t *testing.T) {
	limiter := &fakeLimiter{allowed: true, count: 1}
	rec, called := sendLimited(limiter, http.MethodPost, "/api/v1/user/missing_products")
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected pass-through, got %d called=%v", rec.Code, called)
	}
	if limiter.scope != "203.0.113.9|/api/v1/user/missing_products" {
		t.Fatalf("unexpected scope %q", limiter.scope)
	}
}

func TestRateLimitBlocks(t *testing.T) {
	limiter := &fakeLimiter{allowed: false, count: 6}
	rec, called := sendLimited(limiter, http.MethodPost, "/api/v1/user/product_request")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if called {
		t.Fatalf("handler should not run when limited")
	}
}

func TestRateLimitSkipsNonUserRoutes(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	rec, called := sendLimited(limiter, http.MethodPost, "/api/v1/admin/product")
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected admin route to bypass limiter, got %d called=%v", rec.Code, called)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	rec, called := sendLimited(limiter, http.MethodPost, "/api/v1/user/missing_products")
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected fail-open on limiter error, got %d called=%v", rec.Code, called)
	}
}
