package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request ID on requests and responses.
const Header = "X-Request-Id"

// key is the context key for the request ID.
type key struct{}

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// WithID returns a copy of parent carrying id.
func WithID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, key{}, id)
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}

// FromRequest returns a context carrying the request ID of r. A well-formed
// UUID in the Header is reused; anything else is replaced by a fresh ID.
func FromRequest(r *http.Request) (context.Context, string) {
	if v := r.Header.Get(Header); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			id := parsed.String()
			return WithID(r.Context(), id), id
		}
	}
	return NewContext(r.Context())
}

// Middleware stores a request ID in the request context and echoes it in the
// response Header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := FromRequest(r)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
