package providers

import (
	"context"
	"fmt"

	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

// SightingStore is the remote table store holding sighting records.
// It is the single authority for persisted sightings.
type SightingStore interface {
	// Select returns records from the table ordered as requested
	Select(ctx context.Context, query SelectQuery) ([]gormModels.Sighting, error)

	// Insert persists a new record and returns the id the store assigned
	Insert(ctx context.Context, sighting *gormModels.Sighting) (string, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error

	// GetProviderType returns the store type identifier
	GetProviderType() string
}

// OrderBy is a single-column sort
type OrderBy struct {
	Column     string
	Descending bool
}

// SelectQuery describes an ordered select against a table
type SelectQuery struct {
	Table   string
	OrderBy OrderBy
	Limit   int // 0 means no limit
}

// LatestSightings is the feed query: newest first, optionally capped
func LatestSightings(limit int) SelectQuery {
	return SelectQuery{
		Table:   constants.SightingsTable,
		OrderBy: OrderBy{Column: "observed_at", Descending: true},
		Limit:   limit,
	}
}

// Validate rejects queries the stores cannot express
func (q SelectQuery) Validate() error {
	if q.Table == "" {
		return &StoreError{Code: constants.ErrCodeInvalidDataFormat, Message: "select query has no table"}
	}
	if q.Limit < 0 {
		return &StoreError{Code: constants.ErrCodeInvalidDataFormat, Message: fmt.Sprintf("negative limit %d", q.Limit)}
	}
	if q.OrderBy.Column != "" && !sortableColumns[q.OrderBy.Column] {
		return &StoreError{Code: constants.ErrCodeInvalidDataFormat, Message: fmt.Sprintf("cannot order by %q", q.OrderBy.Column)}
	}
	return nil
}

var sortableColumns = map[string]bool{
	"observed_at": true,
	"species":     true,
	"created_at":  true,
}

// StoreError represents a store-specific error
type StoreError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
