// Package api exposes the search service over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/seanblong/transcriptsearch/internal/auth"
	"github.com/seanblong/transcriptsearch/pkg/models"
)

// Searcher runs one paginated search.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (models.Page, error)
}

// HealthChecker reports whether the corpus can be read.
type HealthChecker interface {
	Readable() error
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Search        Searcher
	Health        HealthChecker
	Gate          *auth.Gate
	Metrics       http.Handler
	Logger        zerolog.Logger
	AllowedOrigin string
	// Timeout bounds one search request; 0 means 10s.
	Timeout time.Duration
}

// NewRouter creates the HTTP handler with logging, CORS and recovery
// wrapped around the routes.
func NewRouter(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.CleanPath)
	r.Use(CORS(d.AllowedOrigin))
	r.Use(Recover)

	r.Get("/healthz", healthHandler(d.Health))
	r.Get("/auth/status", authStatusHandler(d.Gate))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(d.Gate.Middleware)
		search := searchHandler(d.Search, d.Timeout)
		r.Get("/search", search)
		r.Get("/api/search", search)
	})

	return hlog.NewHandler(d.Logger)(
		hlog.RequestIDHandler("req_id", "X-Request-Id")(
			hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
				hlog.FromRequest(r).Info().Str("method", r.Method).Str("path", r.URL.Path).Int("status", status).Int("size", size).Dur("dur", dur).Msg("http")
			})(r),
		),
	)
}
