package providers

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/metrics"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

// InstrumentedStore records call counts and latency for any SightingStore
type InstrumentedStore struct {
	inner   SightingStore
	metrics *metrics.MetricsRegistry
}

var _ SightingStore = (*InstrumentedStore)(nil)

func NewInstrumentedStore(inner SightingStore, reg *metrics.MetricsRegistry) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: reg}
}

func (s *InstrumentedStore) GetProviderType() string {
	return s.inner.GetProviderType()
}

func (s *InstrumentedStore) Select(ctx context.Context, query SelectQuery) ([]gormModels.Sighting, error) {
	start := time.Now()
	rows, err := s.inner.Select(ctx, query)
	s.observe("select", start, err)
	return rows, err
}

func (s *InstrumentedStore) Insert(ctx context.Context, sighting *gormModels.Sighting) (string, error) {
	start := time.Now()
	id, err := s.inner.Insert(ctx, sighting)
	s.observe("insert", start, err)
	return id, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.inner.Ping(ctx)
	s.observe("ping", start, err)
	return err
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.StoreQueriesTotal.WithLabelValues(operation, outcome).Inc()
	s.metrics.StoreQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
