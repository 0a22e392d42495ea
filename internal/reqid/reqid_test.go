package reqid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %s from context, got %s ok=%v", id, got, ok)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("id is not a uuid: %v", err)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))

	t.Run("reuses incoming id", func(t *testing.T) {
		incoming := "0b3c4f7e-8a0e-4b8e-9d1c-2f6f1a7b9c10"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, incoming)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, incoming, seen)
		require.Equal(t, incoming, rec.Header().Get(Header))
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, "bogus")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.NotEqual(t, "bogus", seen)
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		require.Equal(t, seen, rec.Header().Get(Header))
	})
}
