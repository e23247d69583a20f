package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/joe-marks/docs/swagger"
	"github.com/joestump/joe-marks/internal/api"
	"github.com/joestump/joe-marks/internal/auth"
	"github.com/joestump/joe-marks/internal/config"
	"github.com/joestump/joe-marks/internal/logger"
	"github.com/joestump/joe-marks/internal/metrics"
	"github.com/joestump/joe-marks/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Config    *config.Config
	Log       logger.Logger
	DB        *sqlx.DB
	Bookmarks *store.BookmarkStore
}

// NewRouter assembles the full chi router: global middleware, the ungated
// operational endpoints, and the token-gated /api mount.
func NewRouter(deps Deps) http.Handler {
	// Seed the bookmarks gauge from the table so it is correct before the
	// first write, not zero until one happens.
	if n, err := deps.Bookmarks.Count(context.Background()); err != nil {
		deps.Log.Error("seed bookmarks gauge", logger.Error(err))
	} else {
		metrics.BookmarksTotal.Set(float64(n))
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(deps.Log))
	r.Use(recordMetrics)

	// CORS headers stay off unless origins are configured.
	if len(deps.Config.CORS.Origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.Config.CORS.Origins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	if limit := deps.Config.RateLimit.PerMinute; limit > 0 {
		r.Use(httprate.LimitByIP(limit, time.Minute))
	}

	// Operational surface — no auth required.
	health := NewHealthHandler(deps.DB)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI over the committed generated OpenAPI document.
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Bookmark API behind the static bearer token.
	apiRouter := api.NewAPIRouter(api.Deps{
		Auth:      auth.NewStaticTokenMiddleware(deps.Config.API.Token),
		Bookmarks: deps.Bookmarks,
		Log:       deps.Log,
		Config:    deps.Config,
	})
	r.Mount("/api", apiRouter)

	return r
}
