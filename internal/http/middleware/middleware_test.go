package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/testutil"
)

func TestLoggingMiddlewareLogsAndRecords(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	recorder := metrics.NewRecorder()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	wrapped := LoggingMiddleware(logger, recorder, inner)

	req := httptest.NewRequest(http.MethodGet, "/tickers/abc", nil)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("middleware must pass the status through, got %d", rr.Code)
	}
	logged := buf.String()
	if !strings.Contains(logged, "request complete") || !strings.Contains(logged, "status_code=418") {
		t.Fatalf("unexpected log output: %s", logged)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestLoggingMiddlewareStoresRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})
	wrapped := LoggingMiddleware(nil, nil, inner)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
}

func TestSanitizeRequestID(t *testing.T) {
	if got := sanitizeRequestID("good-id_1"); got != "good-id_1" {
		t.Fatalf("valid id must pass through, got %q", got)
	}
	if got := sanitizeRequestID("bad id!"); got == "bad id!" || got == "" {
		t.Fatalf("invalid id must be replaced, got %q", got)
	}
	if got := sanitizeRequestID(strings.Repeat("a", 65)); len(got) == 65 {
		t.Fatal("overlong id must be replaced")
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/health":               "/health",
		"/ready":                "/ready",
		"/tickers":              "/tickers",
		"/tickers/abc-123":      "/tickers/:id",
		"/tickers/slug/court":   "/tickers/slug/:slug",
		"/matches/42":           "/matches/:id",
		"/something/unexpected": "/something/unexpected",
	}
	for input, want := range cases {
		if got := normalizePath(input); got != want {
			t.Fatalf("normalizePath(%q) expected %q, got %q", input, want, got)
		}
	}
}

func TestClientIPFromForwardedHeader(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	wrapped := LoggingMiddleware(logger, nil, inner)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "203.0.113.9") {
		t.Fatalf("expected forwarded ip in log, got: %s", buf.String())
	}
}
