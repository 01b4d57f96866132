package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 2, CleanupInterval: time.Hour})
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatalf("first request should be allowed")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatalf("second request within burst should be allowed")
	}
}

func TestIPRateLimiterRejectsOverBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 2, CleanupInterval: time.Hour})
	defer rl.Stop()

	var gotRejected bool
	for i := 0; i < 10; i++ {
		if !rl.Allow("10.0.0.2") {
			gotRejected = true
			break
		}
	}
	if !gotRejected {
		t.Fatalf("expected a request to be rejected after exceeding burst")
	}
}

func TestIPRateLimiterTracksIPsIndependently(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, CleanupInterval: time.Hour})
	defer rl.Stop()

	if !rl.Allow("10.0.0.3") {
		t.Fatalf("first IP's first request should be allowed")
	}
	if !rl.Allow("10.0.0.4") {
		t.Fatalf("second IP's first request should be allowed independent of the first")
	}
}

func TestMiddlewareRejectsOverLimitWith429(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, CleanupInterval: time.Hour})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	ts := httptest.NewServer(handler)
	defer ts.Close()

	var gotRateLimited bool
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			gotRateLimited = true
			break
		}
	}
	if !gotRateLimited {
		t.Fatalf("expected to be rate limited")
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	r.RemoteAddr = "10.0.0.1:5000"

	if got := clientIP(r); got != "203.0.113.5" {
		t.Fatalf("clientIP() = %q, want 203.0.113.5", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:5000"

	if got := clientIP(r); got != "192.0.2.7" {
		t.Fatalf("clientIP() = %q, want 192.0.2.7", got)
	}
}
