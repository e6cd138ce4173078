package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
	"github.com/preston-bernstein/donor-home-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndRecordsMetrics(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/users/u-1/home", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rec.Snapshot("http").Calls; got != 0 {
		t.Fatalf("expected no provider metrics recorded, got %d", got)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/emergencies?foo=bar", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	got := rr.Header().Get("X-Request-ID")
	if got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if got != seen {
		t.Fatalf("expected header %q to match context id %q", got, seen)
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-abc")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	if got := rr.Header().Get("X-Request-ID"); got != "trace-abc" {
		t.Fatalf("expected incoming id to be echoed, got %q", got)
	}
	if !strings.Contains(buf.String(), "request_id=trace-abc") {
		t.Fatalf("expected request id in log line, got %s", buf.String())
	}
}

func TestLoggingMiddlewareStoresScopedLogger(t *testing.T) {
	base, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/featured", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	testutil.ServeRequest(LoggingMiddleware(base, nil, next), req)

	out := buf.String()
	if !strings.Contains(out, "inside handler") || !strings.Contains(out, "client_ip=198.51.100.1") {
		t.Fatalf("expected handler log to carry request attrs, got %s", out)
	}
}

// Ensure responseWriter defaults status correctly.
func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/users/abc/home", want: "/users/:id/home"},
		{in: "/users/abc/stats", want: "/users/:id/stats"},
		{in: "/users/abc/appointments?x=1", want: "/users/:id/appointments"},
		{in: "/users/abc", want: "/users/:id"},
		{in: "/campaigns/featured", want: "/campaigns/featured"},
		{in: "/health", want: "/health"},
		{in: "/ready", want: "/ready"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/u-1/home", nil)
		handler.ServeHTTP(rr, req)
	}
}
