package api

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/config"
	"charlesfind/safaritracker/internal/metrics"
	"charlesfind/safaritracker/internal/providers"
	"charlesfind/safaritracker/internal/services"

	"go.uber.org/zap"
)

// Pinger is any backing service the health check can ping
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Repositories struct {
	Store     providers.SightingStore
	Stats     services.StatsSource
	Reporters services.ReporterStatsSource
}

type Services struct {
	Feed     *services.FeedService
	Reports  *services.ReportService
	Stats    *services.StatsService
	Profiles *services.ProfileService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Logger   *zap.Logger
	UpSince  time.Time

	// Health lists the backing services reported by /healthCheck
	Health map[string]Pinger
}

// InitDependencies builds the services on top of the already-connected
// store, stats source, cache and alert notifier.
func InitDependencies(
	cfg *config.Config,
	store providers.SightingStore,
	statsSource services.StatsSource,
	cache common.CacheInterface,
	notifier services.AlertNotifier,
	metricsReg *metrics.MetricsRegistry,
	logger *zap.Logger,
) *Dependencies {
	fallback := services.NewStoreStatsSource(store)
	if statsSource == nil {
		statsSource = fallback
	}
	// a SQL stats source usually answers per-guide queries too
	var reporterSource services.ReporterStatsSource = fallback
	if rs, ok := statsSource.(services.ReporterStatsSource); ok {
		reporterSource = rs
	}

	repos := &Repositories{
		Store:     store,
		Stats:     statsSource,
		Reporters: reporterSource,
	}

	svcs := &Services{
		Feed:     services.NewFeedService(store, metricsReg, logger.Named("feed")),
		Reports:  services.NewReportService(store, notifier, metricsReg, logger.Named("report")),
		Stats:    services.NewStatsService(statsSource, cache, cfg.Stats.CacheTTL, metricsReg, logger.Named("stats")),
		Profiles: services.NewProfileService(reporterSource, logger.Named("profile")),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Logger:   logger,
		UpSince:  time.Now(),
		Health: map[string]Pinger{
			store.GetProviderType(): store,
		},
	}
}
