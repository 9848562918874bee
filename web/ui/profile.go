package ui

import (
	"errors"
	"net/http"
	"strings"

	"charlesfind/safaritracker/internal/services"

	"go.uber.org/zap"
)

// ProfileHandler shows a guide's figures and latest reports. The guide is
// picked with the first_name and last_name query parameters; with neither
// set only the lookup form renders.
func (h *UIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	first, last := strings.TrimSpace(q.Get("first_name")), strings.TrimSpace(q.Get("last_name"))

	data := pageData(r, "Profile", "profile")
	data["FirstName"] = first
	data["LastName"] = last

	if first == "" && last == "" {
		h.views.RenderTemplate(w, "profile.html", data)
		return
	}

	stats, err := h.profiles.GetReporterStats(r.Context(), first, last)
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		data["Missing"] = vErr.MissingFields
		data["Error"] = "Enter both your first and last name"
		h.views.RenderTemplate(w, "profile.html", data, http.StatusUnprocessableEntity)
	case err != nil:
		h.logger.Warn("Profile stats unavailable", zap.Error(err))
		data["Error"] = "Couldn't load your statistics. Try again."
		h.views.RenderTemplate(w, "profile.html", data, http.StatusBadGateway)
	default:
		data["Profile"] = stats
		data["Sightings"] = stats.Recent
		h.views.RenderTemplate(w, "profile.html", data)
	}
}
