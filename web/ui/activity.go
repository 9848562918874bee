package ui

import (
	"net/http"
	"strings"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/services"
)

// ActivityHandler renders the full feed screen with search and species filter
func (h *UIHandler) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	data := pageData(r, "Activity", "activity")
	data["Query"] = r.URL.Query().Get("q")
	data["Species"] = speciesParam(r)
	data["SpeciesOptions"] = constants.PopularSpecies
	data["PlaceholderCount"] = 5
	h.views.RenderTemplate(w, "activity.html", data)
}

// ActivityListHandler is the HTMX partial with the filtered sightings
func (h *UIHandler) ActivityListHandler(w http.ResponseWriter, r *http.Request) {
	feed := services.NewFeed(h.feed, 0)
	_ = feed.Refresh(r.Context())

	query := r.URL.Query().Get("q")
	snap := feed.Filtered(query, speciesParam(r))

	data := feedData(snap, "/activity/list?"+r.URL.RawQuery, "#sighting-list")
	data["Filtered"] = strings.TrimSpace(query) != "" || speciesParam(r) != constants.SpeciesFilterAll
	h.views.RenderPartial(w, "sighting_list", data)
}

func speciesParam(r *http.Request) string {
	species := strings.TrimSpace(r.URL.Query().Get("species"))
	if species == "" {
		return constants.SpeciesFilterAll
	}
	return species
}
