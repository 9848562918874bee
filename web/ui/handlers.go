package ui

import (
	"net/http"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/middleware"
	"charlesfind/safaritracker/internal/services"

	"go.uber.org/zap"
)

// UIHandler manages all screen routes
type UIHandler struct {
	feed     *services.FeedService
	reports  *services.ReportService
	stats    *services.StatsService
	profiles *services.ProfileService
	logger   *zap.Logger
	views    *renderer
}

// NewUIHandler creates a new UI handler and parses the embedded templates
func NewUIHandler(
	feed *services.FeedService,
	reports *services.ReportService,
	stats *services.StatsService,
	profiles *services.ProfileService,
	logger *zap.Logger,
) (*UIHandler, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &UIHandler{
		feed:     feed,
		reports:  reports,
		stats:    stats,
		profiles: profiles,
		logger:   logger,
		views:    views,
	}, nil
}

// pageData is the data every page template receives
func pageData(r *http.Request, title, active string) map[string]interface{} {
	return map[string]interface{}{
		"Title":   title,
		"Active":  active,
		"Theme":   middleware.ThemeFromContext(r.Context()),
		"Reserve": constants.ReserveName,
	}
}

// SetThemeHandler handles theme changes via POST request
func (h *UIHandler) SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme := r.FormValue("theme")
	if theme != "dark" {
		theme = "light"
	}

	// Set theme cookie (HTTP-only, expires in 1 year)
	http.SetCookie(w, &http.Cookie{
		Name:     "theme_preference",
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectTo := r.Referer()
	if redirectTo == "" {
		redirectTo = "/"
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}
