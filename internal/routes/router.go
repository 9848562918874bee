package routes

import (
	"net/http"

	"charlesfind/safaritracker/internal/api"
	"charlesfind/safaritracker/internal/config"
	"charlesfind/safaritracker/internal/logging"
	"charlesfind/safaritracker/internal/middleware"
	"charlesfind/safaritracker/web/ui"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the router serving the JSON API, the screens and
// the health and metrics endpoints.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, gatherer prometheus.Gatherer) (http.Handler, error) {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "HX-Request", "HX-Target", "HX-Current-URL"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and request id middleware")

	// health check and metrics
	r.Get("/healthCheck", api.HealthCheckHandler(deps))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	uiHandler, err := ui.NewUIHandler(
		deps.Services.Feed,
		deps.Services.Reports,
		deps.Services.Stats,
		deps.Services.Profiles,
		deps.Logger.Named("ui"),
	)
	if err != nil {
		return nil, err
	}

	submitLimiter := middleware.NewRateLimiter(cfg.Submit.RatePerSecond, cfg.Submit.Burst)

	RegisterUIRoutes(r, uiHandler, submitLimiter, deps)
	RegisterAPIRoutes(r, deps, submitLimiter)

	return r, nil
}
