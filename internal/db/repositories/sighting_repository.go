package repositories

import (
	"context"

	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"gorm.io/gorm"
)

// SightingRepository is the SightingStore backed by a relational database
// through GORM (Postgres in production, SQLite for local runs and tests).
type SightingRepository struct {
	db      *gorm.DB
	backend string
}

var _ providers.SightingStore = (*SightingRepository)(nil)

// NewSightingRepository creates a new GORM-based sighting repository
func NewSightingRepository(db *gorm.DB, backend string) *SightingRepository {
	return &SightingRepository{db: db, backend: backend}
}

func (r *SightingRepository) GetProviderType() string {
	return r.backend
}

// Select returns sightings ordered and capped as the query asks
func (r *SightingRepository) Select(ctx context.Context, query providers.SelectQuery) ([]gormModels.Sighting, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Table(query.Table)
	if query.OrderBy.Column != "" {
		order := query.OrderBy.Column
		if query.OrderBy.Descending {
			order += " DESC"
		}
		tx = tx.Order(order)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var sightings []gormModels.Sighting
	if err := tx.Find(&sightings).Error; err != nil {
		return nil, queryFailed("select sightings", err)
	}
	return sightings, nil
}

// Insert persists the sighting; the id is assigned in BeforeCreate
func (r *SightingRepository) Insert(ctx context.Context, sighting *gormModels.Sighting) (string, error) {
	if err := r.db.WithContext(ctx).Create(sighting).Error; err != nil {
		return "", queryFailed("insert sighting", err)
	}
	return sighting.ID, nil
}

func (r *SightingRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return queryFailed("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return queryFailed("ping", err)
	}
	return nil
}

func queryFailed(op string, err error) error {
	return &providers.StoreError{
		Code:    constants.ErrCodeQueryFailed,
		Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
		Details: op,
		Err:     err,
	}
}
