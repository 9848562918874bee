package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"charlesfind/safaritracker/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		names := make([]string, 0, len(deps.Health))
		for name := range deps.Health {
			names = append(names, name)
		}
		sort.Strings(names)

		services := make(map[string]entities.ServiceStatus, len(names))
		overallStatus := "ok"
		for _, name := range names {
			start := time.Now()
			err := deps.Health[name].Ping(ctx)
			status := entities.ServiceStatus{Status: "ok", Details: "Connected", LatencyMs: time.Since(start).Milliseconds()}
			if err != nil {
				status.Status = "down"
				status.Details = err.Error()
				overallStatus = "down"
			}
			services[name] = status
		}

		resp := entities.HealthCheckResponse{
			Services:     services,
			Status:       overallStatus,
			StoreBackend: deps.Repo.Store.GetProviderType(),
			UpSince:      deps.UpSince,
			Uptime:       time.Since(deps.UpSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
