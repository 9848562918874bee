package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/services"
)

var errExportFailed = errors.New("export failed")

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSightingsHandler handles GET /api/v1/sightings/export.
// Accepts the same filters as the list endpoint.
func ExportSightingsHandler(deps *Dependencies) http.HandlerFunc {
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

		items := deps.Services.Feed.Present(services.ApplyFilter(records, params.query, params.species), params.viewer)

		// build in memory so a failure can still be reported as JSON
		var buf bytes.Buffer
		if err := services.WriteSightingsWorkbook(&buf, items); err != nil {
			deps.Logger.Sugar().Errorw("Failed to build sightings workbook", "error", err)
			common.RespondError(w, initTime, errExportFailed, "Export failed", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("sightings-%s.xlsx", initTime.UTC().Format("20060102"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
