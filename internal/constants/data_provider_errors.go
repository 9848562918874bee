package constants

// Store error codes for the remote sighting store
const (
	ErrCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeTableNotFound     = "TABLE_NOT_FOUND"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeQueryFailed       = "QUERY_FAILED"
)

// Error codes surfaced by the feed and report services
const (
	ErrCodeFetchFailed      = "FETCH_FAILED"
	ErrCodeSubmitFailed     = "SUBMIT_FAILED"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

var StoreErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:     "The sighting store rejected the API key",
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to reach the sighting store. Please check your connection",
	ErrCodeTableNotFound:     "The sightings table was not found in the store",
	ErrCodeInvalidDataFormat: "The sighting store rejected the request data",
	ErrCodeQueryFailed:       "The sighting store query failed",

	ErrCodeFetchFailed:      "Sightings could not be loaded",
	ErrCodeSubmitFailed:     "The sighting could not be reported. Please try again",
	ErrCodeValidationFailed: "Species and reporter name are required",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := StoreErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
