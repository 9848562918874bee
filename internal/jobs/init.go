package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitializeJobs schedules the background jobs and starts the scheduler.
// The caller stops it with the returned cron's Stop.
func InitializeJobs(
	ctx context.Context,
	schedule string,
	stats StatsRefresher,
	logger *zap.Logger,
) (*cron.Cron, error) {
	statsJob := NewStatsRefreshJob(stats, logger.Named("stats_refresh_job"))

	// Run once on startup so the first page view is served from cache
	_ = statsJob.Run(ctx)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		_ = statsJob.Run(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid stats refresh schedule %q: %w", schedule, err)
	}

	c.Start()
	logger.Info("Scheduled jobs started", zap.String("stats_refresh", schedule))
	return c, nil
}
