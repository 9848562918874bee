package dtos

// ReportSightingRequest is the body of POST /api/v1/sightings
type ReportSightingRequest struct {
	Species           string `json:"species"`
	ReporterFirstName string `json:"reporter_first_name"`
	ReporterLastName  string `json:"reporter_last_name"`
	Notes             string `json:"notes"`
	Status            string `json:"status"`
}
