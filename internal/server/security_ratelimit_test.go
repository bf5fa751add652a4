package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	// Create a handler that always returns OK
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < MaxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 Too Many Requests, got %d", rec.Code)
	}

	count, _ := detector.counts(ip)
	if count != MaxRequestsPerWindow+1 {
		t.Errorf("expected count %d, got %d", MaxRequestsPerWindow+1, count)
	}
}

func TestSuspiciousActivityDetector_PerIPBudgets(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < MaxRequestsPerWindow; i++ {
		if !detector.RecordRequest("198.51.100.7") {
			t.Fatalf("request %d rejected early", i)
		}
	}
	if detector.RecordRequest("198.51.100.7") {
		t.Fatal("expected budget to be exhausted")
	}
	if !detector.RecordRequest("198.51.100.8") {
		t.Fatal("another client must keep its own budget")
	}

	requests, failed := detector.counts("198.51.100.8")
	if requests != 1 || failed != 0 {
		t.Errorf("unexpected counters for fresh client: %d requests, %d failed", requests, failed)
	}
}
