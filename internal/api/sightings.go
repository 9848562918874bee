package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	"charlesfind/safaritracker/internal/services"
)

// feedParams are the query parameters shared by the list and export endpoints
type feedParams struct {
	limit   int
	query   string
	species string
	viewer  *services.Position
}

func parseFeedParams(r *http.Request) (feedParams, string) {
	q := r.URL.Query()
	params := feedParams{
		query:   q.Get("q"),
		species: q.Get("species"),
	}
	if params.species == "" {
		params.species = constants.SpeciesFilterAll
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return params, constants.MsgInvalidLimit
		}
		params.limit = limit
	}

	rawLat, rawLng := q.Get("lat"), q.Get("lng")
	if rawLat != "" || rawLng != "" {
		lat, errLat := strconv.ParseFloat(rawLat, 64)
		lng, errLng := strconv.ParseFloat(rawLng, 64)
		if errLat != nil || errLng != nil || !common.ValidPosition(lat, lng) {
			return params, constants.MsgInvalidPosition
		}
		params.viewer = &services.Position{Lat: lat, Lng: lng}
	}

	return params, ""
}

// ListSightingsHandler handles GET /api/v1/sightings
func ListSightingsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		params, msg := parseFeedParams(r)
		if msg != "" {
			common.RespondError(w, initTime, nil, msg, http.StatusBadRequest)
			return
		}

		records, err := deps.Services.Feed.FetchSightings(r.Context(), params.limit)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		filtered := services.ApplyFilter(records, params.query, params.species)
		items := deps.Services.Feed.Present(filtered, params.viewer)

		common.RespondSuccess(w, initTime, constants.MsgFeedLoaded, dtos.FeedResponse{
			Sightings:     items,
			Count:         len(items),
			Query:         params.query,
			SpeciesFilter: params.species,
		})
	}
}

// ReportSightingHandler handles POST /api/v1/sightings
func ReportSightingHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ReportSightingRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
		if err := decoder.Decode(&req); err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
			return
		}

		flow := deps.Services.Reports.NewFlow(services.ReportForm{
			Species:           req.Species,
			ReporterFirstName: req.ReporterFirstName,
			ReporterLastName:  req.ReporterLastName,
			Notes:             req.Notes,
			Status:            strings.ToLower(strings.TrimSpace(req.Status)),
		})

		sighting, err := flow.Submit(r.Context())
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgSightingReported, dtos.ReportSightingResponse{
			ID:    sighting.ID,
			State: string(flow.State()),
		}, http.StatusCreated)
	}
}

// ListSpeciesHandler handles GET /api/v1/species
func ListSpeciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, constants.MsgSpeciesLoaded, dtos.SpeciesResponse{
			Popular: constants.PopularSpecies,
		})
	}
}

// GetStatsHandler handles GET /api/v1/sightings/stats
func GetStatsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := deps.Services.Stats.GetStats(r.Context())
		if err != nil {
			deps.Logger.Sugar().Errorw("Failed to load reserve stats", "error", err)
			common.RespondError(w, initTime, err, "Reserve stats are unavailable", http.StatusBadGateway)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgStatsLoaded, stats)
	}
}
