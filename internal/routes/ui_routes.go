package routes

import (
	"charlesfind/safaritracker/internal/api"
	"charlesfind/safaritracker/internal/middleware"
	"charlesfind/safaritracker/web/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the screens and their HTMX partials
func RegisterUIRoutes(r chi.Router, h *ui.UIHandler, submitLimiter *middleware.RateLimiter, deps *api.Dependencies) {
	r.Group(func(screens chi.Router) {
		screens.Use(middleware.ThemeMiddleware)
		screens.Use(middleware.InFlightMiddleware(deps.Metrics, "ui"))

		screens.Get("/", h.HomeHandler)
		screens.Get("/home/feed", h.HomeFeedHandler)

		screens.Get("/activity", h.ActivityHandler)
		screens.Get("/activity/list", h.ActivityListHandler)

		screens.Get("/report", h.ReportFormHandler)
		screens.Post("/report/check", h.ReportCheckHandler)
		screens.With(submitLimiter.Middleware).Post("/report", h.ReportSubmitHandler)

		screens.Get("/map", h.MapHandler)
		screens.Get("/map/markers", h.MapMarkersHandler)

		screens.Get("/profile", h.ProfileHandler)

		screens.Post("/theme", h.SetThemeHandler)
	})
}
