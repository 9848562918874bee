package api

import (
	"errors"
	"net/http"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	"charlesfind/safaritracker/internal/services"
)

// handleServiceError maps service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		common.RespondErrorWithData(w, initTime, err,
			constants.GetErrorMessage(constants.ErrCodeValidationFailed),
			dtos.ValidationErrorResponse{MissingFields: vErr.MissingFields},
			http.StatusBadRequest,
		)
	case errors.Is(err, services.ErrSubmitInProgress), errors.Is(err, services.ErrAlreadySubmitted):
		common.RespondError(w, initTime, err, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrFetchFailed):
		common.RespondError(w, initTime, err, constants.GetErrorMessage(constants.ErrCodeFetchFailed), http.StatusBadGateway)
	case errors.Is(err, services.ErrSubmitFailed):
		common.RespondError(w, initTime, err, constants.GetErrorMessage(constants.ErrCodeSubmitFailed), http.StatusBadGateway)
	default:
		common.RespondError(w, initTime, err, "An unexpected error occurred", http.StatusInternalServerError)
	}
}
