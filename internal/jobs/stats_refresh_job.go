package jobs

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/models/dtos"

	"go.uber.org/zap"
)

// StatsRefresher recomputes the cached reserve stats
type StatsRefresher interface {
	Refresh(ctx context.Context) (*dtos.ReserveStats, error)
}

// StatsRefreshJob keeps the reserve stats cache warm
type StatsRefreshJob struct {
	stats   StatsRefresher
	timeout time.Duration
	logger  *zap.Logger
}

func NewStatsRefreshJob(stats StatsRefresher, logger *zap.Logger) *StatsRefreshJob {
	return &StatsRefreshJob{
		stats:   stats,
		timeout: 30 * time.Second,
		logger:  logger,
	}
}

// Run executes one refresh
func (j *StatsRefreshJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	stats, err := j.stats.Refresh(ctx)
	if err != nil {
		j.logger.Error("Scheduled stats refresh failed", zap.Error(err))
		return err
	}

	j.logger.Info("Reserve stats refreshed",
		zap.Int64("today_sightings", stats.TodaySightings),
		zap.Int64("active_guides", stats.ActiveGuides),
		zap.Int64("species_spotted", stats.SpeciesSpotted),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
