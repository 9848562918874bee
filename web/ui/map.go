package ui

import (
	"net/http"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

// MapHandler renders the reserve map; markers load from MapMarkersHandler
func (h *UIHandler) MapHandler(w http.ResponseWriter, r *http.Request) {
	data := pageData(r, "Map", "map")
	data["CenterLat"] = constants.ReserveLatitude
	data["CenterLng"] = constants.ReserveLongitude
	data["Zoom"] = constants.ReserveMapZoom
	h.views.RenderTemplate(w, "map.html", data)
}

// MapMarkersHandler returns every sighting as a map marker
func (h *UIHandler) MapMarkersHandler(w http.ResponseWriter, r *http.Request) {
	initTime := time.Now()

	records, err := h.feed.FetchSightings(r.Context(), 0)
	if err != nil {
		common.RespondError(w, initTime, err, constants.GetErrorMessage(constants.ErrCodeFetchFailed), http.StatusBadGateway)
		return
	}

	common.RespondSuccess(w, initTime, constants.MsgFeedLoaded, dtos.MapMarkersResponse{
		Center:  [2]float64{constants.ReserveLatitude, constants.ReserveLongitude},
		Zoom:    constants.ReserveMapZoom,
		Markers: buildMarkers(records, initTime),
	})
}

func buildMarkers(records []gormModels.Sighting, now time.Time) []dtos.MapMarker {
	markers := make([]dtos.MapMarker, 0, len(records))
	for _, s := range records {
		markers = append(markers, dtos.MapMarker{
			ID:       s.ID,
			Species:  s.Species,
			Lat:      s.Latitude,
			Lng:      s.Longitude,
			IsUrgent: s.IsUrgent(),
			Time:     common.FormatRelative(s.ObservedAt, now),
			Reporter: s.ReporterName(),
		})
	}
	return markers
}
