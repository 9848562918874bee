package responses

// APIResponse is the typed form of dtos.APIResponse, used when decoding our own responses
type APIResponse[T any] struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         *T     `json:"data,omitempty"`
}
