package constants

const (
	MsgFeedLoaded       = "Sightings fetched successfully"
	MsgSightingReported = "Sighting reported successfully"
	MsgStatsLoaded      = "Reserve stats fetched successfully"
	MsgSpeciesLoaded    = "Species list fetched successfully"
	MsgReporterLoaded   = "Reporter stats fetched successfully"
	MsgInvalidBody      = "Request body must be a JSON sighting report"
	MsgInvalidLimit     = "limit must be a positive integer"
	MsgInvalidPosition  = "lat and lng must both be valid coordinates"
)
