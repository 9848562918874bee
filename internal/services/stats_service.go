package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/metrics"
	"charlesfind/safaritracker/internal/models/dtos"
	"charlesfind/safaritracker/internal/providers"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const statsComputeTimeout = 30 * time.Second

// StatsSource aggregates sightings observed in [start, end)
type StatsSource interface {
	CountBetween(ctx context.Context, start, end time.Time) (*dtos.ReserveStats, error)
}

// StatsService serves the reserve's figures for the current UTC day from
// cache, computing them at most once per key at a time.
type StatsService struct {
	source  StatsSource
	cache   common.CacheInterface
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.MetricsRegistry
	logger  *zap.Logger
	now     func() time.Time
}

func NewStatsService(
	source StatsSource,
	cache common.CacheInterface,
	ttl time.Duration,
	reg *metrics.MetricsRegistry,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		source:  source,
		cache:   cache,
		ttl:     ttl,
		metrics: reg,
		logger:  logger,
		now:     time.Now,
	}
}

// GetStats returns today's stats, from cache when fresh
func (s *StatsService) GetStats(ctx context.Context) (*dtos.ReserveStats, error) {
	key := s.cacheKey(s.now())

	var cached dtos.ReserveStats
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Stats cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixReserveStats)).Inc()
		return &cached, nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixReserveStats)).Inc()

	return s.load(ctx, key)
}

// Refresh recomputes today's stats and replaces the cached value
func (s *StatsService) Refresh(ctx context.Context) (*dtos.ReserveStats, error) {
	key := s.cacheKey(s.now())
	return s.load(ctx, key)
}

// load runs compute once per key for all concurrent callers. The shared
// computation does not inherit the first caller's cancellation; each caller
// stops waiting when its own ctx ends.
func (s *StatsService) load(ctx context.Context, key string) (*dtos.ReserveStats, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsComputeTimeout)
		defer cancel()
		return s.compute(computeCtx, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dtos.ReserveStats), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *StatsService) compute(ctx context.Context, key string) (*dtos.ReserveStats, error) {
	start := time.Now()
	defer func() {
		s.metrics.StatsRefreshDuration.Observe(time.Since(start).Seconds())
	}()

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.source.CountBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to compute reserve stats: %w", err)
	}
	stats.ComputedAt = now

	if err := s.cache.Set(ctx, key, stats, s.ttl); err != nil {
		s.logger.Warn("Stats cache write failed", zap.String("key", key), zap.Error(err))
	}
	return stats, nil
}

func (s *StatsService) cacheKey(now time.Time) string {
	return string(constants.CachePrefixReserveStats) + now.UTC().Format("2006-01-02")
}

// StoreStatsSource computes the stats in memory from the sighting store.
// Used when the store is the hosted table API and there is no SQL access.
type StoreStatsSource struct {
	store providers.SightingStore
}

var _ StatsSource = (*StoreStatsSource)(nil)

func NewStoreStatsSource(store providers.SightingStore) *StoreStatsSource {
	return &StoreStatsSource{store: store}
}

func (s *StoreStatsSource) CountBetween(ctx context.Context, start, end time.Time) (*dtos.ReserveStats, error) {
	records, err := s.store.Select(ctx, providers.LatestSightings(0))
	if err != nil {
		return nil, err
	}

	guides := make(map[string]struct{})
	species := make(map[string]struct{})
	var stats dtos.ReserveStats

	for _, r := range records {
		if r.ObservedAt.Before(start) || !r.ObservedAt.Before(end) {
			continue
		}
		stats.TodaySightings++
		if r.IsUrgent() {
			stats.UrgentToday++
		}
		guides[r.ReporterFirstName+"\x00"+r.ReporterLastName] = struct{}{}
		species[strings.ToLower(r.Species)] = struct{}{}
	}

	stats.ActiveGuides = int64(len(guides))
	stats.SpeciesSpotted = int64(len(species))
	return &stats, nil
}
