package services

import (
	"context"
	"fmt"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/metrics"
	"charlesfind/safaritracker/internal/models/dtos"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"go.uber.org/zap"
)

// SightingFetcher loads the newest sightings; limit 0 means all
type SightingFetcher interface {
	FetchSightings(ctx context.Context, limit int) ([]gormModels.Sighting, error)
}

// Position is a viewer location used for distance labels
type Position struct {
	Lat float64
	Lng float64
}

// FeedService reads sightings from the store, newest first
type FeedService struct {
	store   providers.SightingStore
	metrics *metrics.MetricsRegistry
	logger  *zap.Logger
	now     func() time.Time
}

var _ SightingFetcher = (*FeedService)(nil)

func NewFeedService(store providers.SightingStore, reg *metrics.MetricsRegistry, logger *zap.Logger) *FeedService {
	return &FeedService{
		store:   store,
		metrics: reg,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchSightings returns the most recent limit sightings (all when limit
// is 0) ordered by observation time descending. Any store failure is
// reported as ErrFetchFailed wrapping the cause; there is no retry.
func (s *FeedService) FetchSightings(ctx context.Context, limit int) ([]gormModels.Sighting, error) {
	records, err := s.store.Select(ctx, providers.LatestSightings(limit))
	if err != nil {
		s.metrics.FeedFetchFailuresTotal.Inc()
		s.logger.Error("Failed to fetch sightings",
			zap.String("store", s.store.GetProviderType()),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return records, nil
}

// Present decorates records with their display labels. viewer may be nil.
func (s *FeedService) Present(records []gormModels.Sighting, viewer *Position) []dtos.SightingItem {
	return PresentSightings(records, s.now(), viewer)
}

// PresentSightings builds feed items with the relative-time label and,
// when viewer is set, the distance from the viewer.
func PresentSightings(records []gormModels.Sighting, now time.Time, viewer *Position) []dtos.SightingItem {
	items := make([]dtos.SightingItem, 0, len(records))
	for _, r := range records {
		item := dtos.SightingItem{
			ID:                  r.ID,
			Species:             r.Species,
			ReporterFirstName:   r.ReporterFirstName,
			ReporterLastName:    r.ReporterLastName,
			Notes:               r.Notes,
			Status:              r.Status,
			LocationDescription: r.LocationDescription,
			Latitude:            r.Latitude,
			Longitude:           r.Longitude,
			ObservedAt:          r.ObservedAt,
			TimeAgo:             common.FormatRelative(r.ObservedAt, now),
		}
		if viewer != nil {
			item.Distance = common.FormatDistance(common.DistanceKm(viewer.Lat, viewer.Lng, r.Latitude, r.Longitude))
		}
		items = append(items, item)
	}
	return items
}
