package repositories

import (
	"context"
	"fmt"
	"time"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	gormModels "charlesfind/safaritracker/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// SightingStatsRepo runs the aggregate queries behind the reserve stats
type SightingStatsRepo struct {
	db *sqlx.DB
}

func NewSightingStatsRepo(db *sqlx.DB) *SightingStatsRepo {
	return &SightingStatsRepo{db}
}

// CountBetween aggregates sightings observed in [start, end)
func (r *SightingStatsRepo) CountBetween(ctx context.Context, start, end time.Time) (*dtos.ReserveStats, error) {
	var stats dtos.ReserveStats

	counts := []struct {
		name  string
		query string
		dest  *int64
	}{
		{"sightings", constants.CountSightingsBetween, &stats.TodaySightings},
		{"guides", constants.CountActiveGuidesBetween, &stats.ActiveGuides},
		{"species", constants.CountSpeciesBetween, &stats.SpeciesSpotted},
		{"urgent", constants.CountUrgentSightingsBetween, &stats.UrgentToday},
	}

	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dest, c.query, start.UTC(), end.UTC()); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	return &stats, nil
}

// ReporterCounts aggregates one guide's sightings; ThisMonth counts those
// observed in [monthStart, monthEnd)
func (r *SightingStatsRepo) ReporterCounts(ctx context.Context, firstName, lastName string, monthStart, monthEnd time.Time) (*dtos.ReporterStats, error) {
	var stats dtos.ReporterStats

	counts := []struct {
		name  string
		query string
		dest  *int64
		args  []interface{}
	}{
		{"sightings", constants.CountReporterSightings, &stats.TotalSightings, []interface{}{firstName, lastName}},
		{"species", constants.CountReporterSpecies, &stats.SpeciesFound, []interface{}{firstName, lastName}},
		{"month", constants.CountReporterSightingsBetween, &stats.ThisMonth, []interface{}{firstName, lastName, monthStart.UTC(), monthEnd.UTC()}},
		{"urgent", constants.CountReporterUrgent, &stats.UrgentReported, []interface{}{firstName, lastName}},
	}

	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dest, c.query, c.args...); err != nil {
			return nil, fmt.Errorf("failed to count reporter %s: %w", c.name, err)
		}
	}

	return &stats, nil
}

// RecentByReporter returns the guide's newest sightings
func (r *SightingStatsRepo) RecentByReporter(ctx context.Context, firstName, lastName string, limit int) ([]gormModels.Sighting, error) {
	var rows []gormModels.Sighting
	if err := r.db.SelectContext(ctx, &rows, constants.SelectRecentReporterSightings, firstName, lastName, limit); err != nil {
		return nil, fmt.Errorf("failed to select reporter sightings: %w", err)
	}
	return rows, nil
}

// Ping checks the connection is alive
func (r *SightingStatsRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.GetContext(ctx, &one, constants.PingQuery)
}
