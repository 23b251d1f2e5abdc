package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/notesentry/notesentry/internal/config"
	"github.com/notesentry/notesentry/internal/logger"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.Server.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func postRedact(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/redact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRedact(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postRedact(t, srv, `{"text":"Contact jane.doe@example.org or 555-867-5309."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp RedactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.Contains(resp.Text, "[EMAIL]") || !strings.Contains(resp.Text, "[PHONE]") {
		t.Errorf("text = %q, want [EMAIL] and [PHONE] tokens", resp.Text)
	}
	if resp.Stats.Emails != 1 || resp.Stats.Phones != 1 {
		t.Errorf("stats = %+v, want 1 email and 1 phone", resp.Stats)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}
	if resp.CacheHit {
		t.Error("cache_hit = true with cache disabled")
	}
}

func TestHandleRedactSkip(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postRedact(t, srv, `{"text":"Call 555-867-5309 today.","skip":["phone"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp RedactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Text, "555-867-5309") {
		t.Errorf("text = %q, want phone number preserved", resp.Text)
	}
	if resp.Stats.Phones != 0 {
		t.Errorf("phones = %d, want 0", resp.Stats.Phones)
	}
}

func TestHandleRedactUnknownSkip(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postRedact(t, srv, `{"text":"hello","skip":["telepathy"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "telepathy") {
		t.Errorf("error = %q, want unknown category named", resp.Error)
	}
}

func TestHandleRedactInvalidJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postRedact(t, srv, `{"text": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleRedactBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 64
	})

	body, err := json.Marshal(RedactRequest{Text: strings.Repeat("a", 256)})
	if err != nil {
		t.Fatal(err)
	}

	rec := postRedact(t, srv, string(bytes.TrimSpace(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandleAuditDisabled(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/v1/audit/recent", "/v1/audit/totals"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", resp["status"])
	}
}

func TestHandleInfo(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["cache_enabled"] != false || resp["audit_enabled"] != false {
		t.Errorf("info = %v, want cache and audit disabled", resp)
	}
	if _, ok := resp["categories"].([]interface{}); !ok {
		t.Errorf("categories missing from info response: %v", resp)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
	})

	if !rl.allow("10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !rl.allow("10.0.0.1") {
		t.Error("second request should be allowed within burst")
	}
	if rl.allow("10.0.0.1") {
		t.Error("third request should exceed the burst")
	}

	// A different client gets its own bucket
	if !rl.allow("10.0.0.2") {
		t.Error("request from a new client should be allowed")
	}
}

func TestRateLimiterRemoveIdle(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
	})

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Hour)
	rl.mu.Unlock()

	rl.removeIdle(time.Now().Add(-time.Hour))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Error("idle bucket should be removed")
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("active bucket should survive")
	}
}

func TestRateLimiterStop(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
	})
	rl.startCleanup()
	rl.stop()

	select {
	case <-rl.done:
	default:
		t.Error("stop should release the cleanup goroutine")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             1,
		}
	})

	first := postRedact(t, srv, `{"text":"hello"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := postRedact(t, srv, `{"text":"hello"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := getClientIP(req); got != "192.0.2.1:1234" {
		t.Errorf("getClientIP() = %q, want remote addr", got)
	}

	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := getClientIP(req); got != "198.51.100.7" {
		t.Errorf("getClientIP() = %q, want X-Real-IP value", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := getClientIP(req); got != "203.0.113.9" {
		t.Errorf("getClientIP() = %q, want X-Forwarded-For value", got)
	}
}
