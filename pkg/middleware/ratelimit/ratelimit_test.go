package ratelimit

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func post(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	return rw.Code
}

func TestMiddleware_RejectsAfterBurst(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(0.001, 2, 0)
	h := l.Middleware(log)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, post(h, "10.0.0.1:5555", ""))
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third request, got %d", codes[2])
	}
}

func TestMiddleware_SeparateBucketsPerClient(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(0.001, 1, 0)
	h := l.Middleware(log)(http.HandlerFunc(okHandler))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		if code := post(h, addr, ""); code != http.StatusOK {
			t.Fatalf("client %s: expected 200, got %d", addr, code)
		}
	}
}

func TestMiddleware_IgnoresForwardedForFromPeer(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(1, 1, 0)
	h := l.Middleware(log)(http.HandlerFunc(okHandler))

	allowed := 0
	for i := 0; i < 100; i++ {
		if post(h, "10.0.0.1:4000", fmt.Sprintf("1.2.3.%d", i)) == http.StatusOK {
			allowed++
		}
	}

	if allowed != 1 {
		t.Fatalf("rotating X-Forwarded-For let %d requests through, want 1", allowed)
	}
	if l.Len() != 1 {
		t.Fatalf("expected one bucket for one peer, got %d", l.Len())
	}
}

func TestMiddleware_TrustedProxyUsesRealIP(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := New(0.001, 1, 0)
	h := middleware.RealIP(l.Middleware(log)(http.HandlerFunc(okHandler)))

	if code := post(h, "10.0.0.1:4000", "203.0.113.7"); code != http.StatusOK {
		t.Fatalf("first client: got %d", code)
	}
	if code := post(h, "10.0.0.1:4000", "203.0.113.8"); code != http.StatusOK {
		t.Fatalf("second client behind the same proxy: got %d", code)
	}
	if code := post(h, "10.0.0.1:4000", "203.0.113.7"); code != http.StatusTooManyRequests {
		t.Fatalf("repeat client: got %d, want 429", code)
	}
}

func TestSweep_DropsIdleBuckets(t *testing.T) {
	l := New(1, 1, time.Minute)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(45 * time.Second)
	l.Allow("10.0.0.2")
	now = now.Add(30 * time.Second)

	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("removed %d buckets, want 1", removed)
	}
	if l.Len() != 1 {
		t.Fatalf("expected the recent bucket to survive, have %d", l.Len())
	}
}

func TestClientKey_UsesRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	if got := clientKey(req); got != "10.0.0.1" {
		t.Fatalf("expected peer address, got %q", got)
	}
}
