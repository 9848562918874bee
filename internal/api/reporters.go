package api

import (
	"net/http"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
)

// GetReporterStatsHandler handles GET /api/v1/reporters/stats?first_name=&last_name=
func GetReporterStatsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		stats, err := deps.Services.Profiles.GetReporterStats(r.Context(), q.Get("first_name"), q.Get("last_name"))
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgReporterLoaded, stats)
	}
}
