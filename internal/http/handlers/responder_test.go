package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/donor-home-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteUpstreamErrorStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"timeout": {err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		"other":   {err: errors.New("connection refused"), want: http.StatusBadGateway},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/emergencies", nil)
			writeUpstreamError(rr, req, tc.err, nil)
			testutil.AssertStatus(t, rr, tc.want)
		})
	}
}
