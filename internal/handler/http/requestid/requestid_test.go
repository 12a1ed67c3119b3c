package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"playground-api/internal/handler/http/requestid"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext on bare context = %q, want empty", got)
	}

	ctx := requestid.WithRequestID(context.Background(), "abc-123")
	if got := requestid.FromContext(ctx); got != "abc-123" {
		t.Errorf("FromContext = %q, want abc-123", got)
	}
}

func TestMiddlewareGeneratesID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("no request ID in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", seen, err)
	}
	if got := w.Header().Get(requestid.Header); got != seen {
		t.Errorf("response header = %q, context = %q", got, seen)
	}
}

func TestMiddlewarePropagatesInboundID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(requestid.Header, "upstream-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if seen != "upstream-id" {
		t.Errorf("context ID = %q, want upstream-id", seen)
	}
	if got := w.Header().Get(requestid.Header); got != "upstream-id" {
		t.Errorf("response header = %q, want upstream-id", got)
	}
}
