package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/joe-marks/internal/auth"
	"github.com/joestump/joe-marks/internal/config"
	"github.com/joestump/joe-marks/internal/logger"
	"github.com/joestump/joe-marks/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Auth      *auth.StaticTokenMiddleware
	Bookmarks *store.BookmarkStore
	Log       logger.Logger
	Config    *config.Config
}

// NewAPIRouter creates the chi sub-router mounted at /api.
// All routes require the Bearer token and return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	// All API responses are JSON.
	r.Use(jsonContentType)

	// Bearer token check on every API route, before anything else runs.
	r.Use(deps.Auth.Authenticate)

	registerBookmarkRoutes(r, deps)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
