package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReporterStatsSource aggregates one guide's sightings. Names compare
// case-insensitively.
type ReporterStatsSource interface {
	ReporterCounts(ctx context.Context, firstName, lastName string, monthStart, monthEnd time.Time) (*dtos.ReporterStats, error)
	RecentByReporter(ctx context.Context, firstName, lastName string, limit int) ([]gormModels.Sighting, error)
}

// ProfileService backs the profile screen
type ProfileService struct {
	source ReporterStatsSource
	logger *zap.Logger
	now    func() time.Time
}

func NewProfileService(source ReporterStatsSource, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// GetReporterStats returns the guide's totals, the count for the current
// UTC calendar month and their latest reports. Both names are required.
func (s *ProfileService) GetReporterStats(ctx context.Context, firstName, lastName string) (*dtos.ReporterStats, error) {
	first, last := strings.TrimSpace(firstName), strings.TrimSpace(lastName)

	var missing []string
	if first == "" {
		missing = append(missing, "reporter_first_name")
	}
	if last == "" {
		missing = append(missing, "reporter_last_name")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	now := s.now()
	utc := now.UTC()
	monthStart := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		stats  *dtos.ReporterStats
		recent []gormModels.Sighting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.source.ReporterCounts(gctx, first, last, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.source.RecentByReporter(gctx, first, last, constants.ProfileRecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load reporter stats",
			zap.String("reporter", first+" "+last),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	stats.FirstName = first
	stats.LastName = last
	stats.Recent = PresentSightings(recent, now, nil)
	return stats, nil
}

var _ ReporterStatsSource = (*StoreStatsSource)(nil)

// ReporterCounts scans the whole store for the guide's sightings
func (s *StoreStatsSource) ReporterCounts(ctx context.Context, firstName, lastName string, monthStart, monthEnd time.Time) (*dtos.ReporterStats, error) {
	records, err := s.store.Select(ctx, providers.LatestSightings(0))
	if err != nil {
		return nil, err
	}

	species := make(map[string]struct{})
	var stats dtos.ReporterStats

	for _, r := range records {
		if !sameReporter(r, firstName, lastName) {
			continue
		}
		stats.TotalSightings++
		species[strings.ToLower(strings.TrimSpace(r.Species))] = struct{}{}
		if !r.ObservedAt.Before(monthStart) && r.ObservedAt.Before(monthEnd) {
			stats.ThisMonth++
		}
		if r.IsUrgent() {
			stats.UrgentReported++
		}
	}

	stats.SpeciesFound = int64(len(species))
	return &stats, nil
}

// RecentByReporter filters the newest-first store listing down to the guide
func (s *StoreStatsSource) RecentByReporter(ctx context.Context, firstName, lastName string, limit int) ([]gormModels.Sighting, error) {
	records, err := s.store.Select(ctx, providers.LatestSightings(0))
	if err != nil {
		return nil, err
	}

	out := make([]gormModels.Sighting, 0, limit)
	for _, r := range records {
		if len(out) == limit {
			break
		}
		if sameReporter(r, firstName, lastName) {
			out = append(out, r)
		}
	}
	return out, nil
}

func sameReporter(r gormModels.Sighting, firstName, lastName string) bool {
	return strings.EqualFold(strings.TrimSpace(r.ReporterFirstName), firstName) &&
		strings.EqualFold(strings.TrimSpace(r.ReporterLastName), lastName)
}
