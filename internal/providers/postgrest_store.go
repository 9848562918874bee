package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PostgRESTStore implements SightingStore against a hosted PostgREST
// table API (the Supabase REST interface).
type PostgRESTStore struct {
	client *resty.Client
	logger *zap.Logger
}

var _ SightingStore = (*PostgRESTStore)(nil)

// NewPostgRESTStore creates a store client for the project at baseURL
func NewPostgRESTStore(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *PostgRESTStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	logRequest := common.LogHTTPRequest(logger)
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		logRequest(req)
		return nil
	})

	return &PostgRESTStore{
		client: client,
		logger: logger,
	}
}

// GetProviderType returns the store type identifier
func (s *PostgRESTStore) GetProviderType() string {
	return "postgrest"
}

// Select fetches records with PostgREST's select/order/limit query parameters
func (s *PostgRESTStore) Select(ctx context.Context, query SelectQuery) ([]gormModels.Sighting, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []gormModels.Sighting
	req := s.client.R().
		SetContext(ctx).
		SetResult(&rows).
		SetQueryParam("select", "*")

	if order := query.OrderBy.param(); order != "" {
		req.SetQueryParam("order", order)
	}
	if query.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(query.Limit))
	}

	endpoint := tablePath(query.Table)
	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, &StoreError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	if resp.IsError() {
		return nil, buildHTTPError(resp.StatusCode(), endpoint, resp.String())
	}

	s.logger.Debug("Selected sightings",
		zap.String("table", query.Table),
		zap.Int("limit", query.Limit),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// insertPayload leaves id and created_at for the store to assign
type insertPayload struct {
	Species             string    `json:"species"`
	ReporterFirstName   string    `json:"reporter_first_name"`
	ReporterLastName    string    `json:"reporter_last_name"`
	Notes               *string   `json:"notes"`
	Status              string    `json:"status"`
	LocationDescription *string   `json:"location_description"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	ObservedAt          time.Time `json:"observed_at"`
}

// Insert creates the record and reads back the assigned id. The id is
// empty when the store accepts the row but returns no representation.
func (s *PostgRESTStore) Insert(ctx context.Context, sighting *gormModels.Sighting) (string, error) {
	payload := insertPayload{
		Species:             sighting.Species,
		ReporterFirstName:   sighting.ReporterFirstName,
		ReporterLastName:    sighting.ReporterLastName,
		Notes:               sighting.Notes,
		Status:              sighting.Status,
		LocationDescription: sighting.LocationDescription,
		Latitude:            sighting.Latitude,
		Longitude:           sighting.Longitude,
		ObservedAt:          sighting.ObservedAt.UTC(),
	}

	var created []gormModels.Sighting
	endpoint := tablePath(constants.SightingsTable)
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(payload).
		SetResult(&created).
		Post(endpoint)
	if err != nil {
		return "", &StoreError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	if resp.IsError() {
		return "", buildHTTPError(resp.StatusCode(), endpoint, resp.String())
	}

	// 2xx means the row is persisted; without a representation the id is unknown
	if len(created) == 0 || created[0].ID == "" {
		s.logger.Warn("Store accepted insert without returning the record",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()),
			zap.String("species", sighting.Species),
			zap.Time("observed_at", sighting.ObservedAt),
		)
		return "", nil
	}

	sighting.ID = created[0].ID
	return sighting.ID, nil
}

// Ping performs a minimal select to verify credentials and table access
func (s *PostgRESTStore) Ping(ctx context.Context) error {
	endpoint := tablePath(constants.SightingsTable)
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		Get(endpoint)
	if err != nil {
		return &StoreError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	if resp.IsError() {
		return buildHTTPError(resp.StatusCode(), endpoint, resp.String())
	}
	return nil
}

func tablePath(table string) string {
	return "/rest/v1/" + table
}

func (o OrderBy) param() string {
	if o.Column == "" {
		return ""
	}
	if o.Descending {
		return o.Column + ".desc"
	}
	return o.Column + ".asc"
}

// buildHTTPError creates appropriate error based on status code
func buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &StoreError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidAPIKey),
			Details: body,
		}
	case http.StatusNotFound:
		return &StoreError{
			Code:    constants.ErrCodeTableNotFound,
			Message: fmt.Sprintf("Table not found: %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &StoreError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &StoreError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("Bad request to %s", endpoint),
			Details: body,
		}
	default:
		return &StoreError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s: %s", statusCode, endpoint, body),
			Details: body,
		}
	}
}
