package routes

import (
	"charlesfind/safaritracker/internal/api"
	"charlesfind/safaritracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, submitLimiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.InFlightMiddleware(deps.Metrics, "api"))

		v1.Get("/species", api.ListSpeciesHandler())
		v1.Get("/reporters/stats", api.GetReporterStatsHandler(deps))

		v1.Route("/sightings", func(s chi.Router) {
			s.Get("/", api.ListSightingsHandler(deps))
			s.Get("/stats", api.GetStatsHandler(deps))
			s.Get("/export", api.ExportSightingsHandler(deps))

			// writes are rate limited per client
			s.With(submitLimiter.Middleware).Post("/", api.ReportSightingHandler(deps))
		})
	})
}
