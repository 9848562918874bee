package dtos

import "time"

// --- Controller endpoints ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// SightingItem is a sighting as presented in a feed, with display labels
type SightingItem struct {
	ID                  string    `json:"id"`
	Species             string    `json:"species"`
	ReporterFirstName   string    `json:"reporter_first_name"`
	ReporterLastName    string    `json:"reporter_last_name"`
	Notes               *string   `json:"notes"`
	Status              string    `json:"status"`
	LocationDescription *string   `json:"location_description"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	ObservedAt          time.Time `json:"observed_at"`

	TimeAgo  string `json:"time_ago"`
	Distance string `json:"distance,omitempty"`
}

// FeedResponse is the body of GET /api/v1/sightings
type FeedResponse struct {
	Sightings     []SightingItem `json:"sightings"`
	Count         int            `json:"count"`
	Query         string         `json:"query"`
	SpeciesFilter string         `json:"species_filter"`
}

// ReportSightingResponse is the body returned after a successful submission
type ReportSightingResponse struct {
	ID    string `json:"id,omitempty"`
	State string `json:"state"`
}

// ValidationErrorResponse lists the required fields that were missing
type ValidationErrorResponse struct {
	MissingFields []string `json:"missing_fields"`
}

// ReserveStats are the headline numbers shown on the home and map screens
type ReserveStats struct {
	TodaySightings int64     `json:"today_sightings"`
	ActiveGuides   int64     `json:"active_guides"`
	SpeciesSpotted int64     `json:"species_spotted"`
	UrgentToday    int64     `json:"urgent_today"`
	ComputedAt     time.Time `json:"computed_at"`
}

type SpeciesResponse struct {
	Popular []string `json:"popular"`
}

// ReporterStats are one guide's lifetime and current-month figures plus
// their latest reports
type ReporterStats struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	TotalSightings int64          `json:"total_sightings"`
	SpeciesFound   int64          `json:"species_found"`
	ThisMonth      int64          `json:"this_month"`
	UrgentReported int64          `json:"urgent_reported"`
	Recent         []SightingItem `json:"recent"`
}
