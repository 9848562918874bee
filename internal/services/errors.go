package services

import (
	"errors"
	"strings"
)

var (
	// ErrFetchFailed means the feed could not be loaded. Callers must treat
	// the feed as unavailable, not empty.
	ErrFetchFailed = errors.New("fetch failed")

	ErrSubmitFailed     = errors.New("submit failed")
	ErrValidationFailed = errors.New("validation failed")

	// ErrSubmitInProgress rejects a submit while another is outstanding
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrAlreadySubmitted rejects a submit on a flow that already succeeded
	ErrAlreadySubmitted = errors.New("sighting already submitted")
)

// ValidationError lists the report fields that failed their precondition
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: missing " + strings.Join(e.MissingFields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
