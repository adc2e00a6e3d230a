package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arellano-digital/alternativas-backend/pkg/logger"
)

type fakeLimiterStore struct {
	count int64
	err   error
	calls int
}

func (f *fakeLimiterStore) IncrWithTTL(_ context.Context, _ string, _ time.Duration) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.count++
	return f.count, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewRateLimitPolicy("search", time.Minute, 2)
	handler := RateLimit(policy, store, testLogger())(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	store := &fakeLimiterStore{count: 5}
	policy := NewRateLimitPolicy("submit", time.Minute, 3)
	handler := RateLimit(policy, store, testLogger())(okHandler())

	req := httptest.NewRequest("POST", "/api/v1/responses", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	store := &fakeLimiterStore{err: errors.New("redis down")}
	policy := NewRateLimitPolicy("search", time.Minute, 1)
	handler := RateLimit(policy, store, testLogger())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewRateLimitPolicy("search", 0, 0)
	handler := RateLimit(policy, store, testLogger())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if store.calls != 0 {
		t.Fatalf("disabled policy should not consult the store")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded ip, got %q", got)
	}
}
