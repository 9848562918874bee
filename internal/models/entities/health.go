package entities

import "time"

// ServiceStatus is the ping result for one backing service
type ServiceStatus struct {
	Status    string `json:"status"`
	Details   string `json:"details"`
	LatencyMs int64  `json:"latency_ms"`
}

type HealthCheckResponse struct {
	Status       string                   `json:"status"`
	StoreBackend string                   `json:"store_backend"`
	Services     map[string]ServiceStatus `json:"services"`
	UpSince      time.Time                `json:"up_since"`
	Uptime       string                   `json:"uptime"`
}
