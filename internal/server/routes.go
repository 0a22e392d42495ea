package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	reqid "github.com/hanpama/wpgraph/internal/reqid"
	"github.com/rs/cors"
)

// Routes mounts h at /graphql next to a /healthz probe. Every route carries a
// request ID; CORS is applied when origins are configured.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(reqid.Middleware)
	if len(h.opt.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: h.opt.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{reqid.Header},
		}).Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/graphql", h)
	return r
}
