package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"charlesfind/safaritracker/internal/metrics"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"github.com/prometheus/client_golang/prometheus"
)

// Mock SightingStore
type mockSightingStore struct {
	selectFunc func(ctx context.Context, query providers.SelectQuery) ([]gormModels.Sighting, error)
	insertFunc func(ctx context.Context, sighting *gormModels.Sighting) (string, error)
	pingFunc   func(ctx context.Context) error
}

func (m *mockSightingStore) Select(ctx context.Context, query providers.SelectQuery) ([]gormModels.Sighting, error) {
	return m.selectFunc(ctx, query)
}

func (m *mockSightingStore) Insert(ctx context.Context, sighting *gormModels.Sighting) (string, error) {
	return m.insertFunc(ctx, sighting)
}

func (m *mockSightingStore) Ping(ctx context.Context) error {
	if m.pingFunc == nil {
		return nil
	}
	return m.pingFunc(ctx)
}

func (m *mockSightingStore) GetProviderType() string {
	return "mock"
}

// memoryStore is a working in-memory store with an optional insert failure
type memoryStore struct {
	mu        sync.Mutex
	records   []gormModels.Sighting
	nextID    int
	insertErr error
	inserts   int
}

func (s *memoryStore) Select(_ context.Context, query providers.SelectQuery) ([]gormModels.Sighting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gormModels.Sighting, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.After(out[j].ObservedAt) })
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (s *memoryStore) Insert(_ context.Context, sighting *gormModels.Sighting) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inserts++
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.nextID++
	sighting.ID = fmt.Sprintf("id-%d", s.nextID)
	s.records = append(s.records, *sighting)
	return sighting.ID, nil
}

func (s *memoryStore) Ping(context.Context) error { return nil }
func (s *memoryStore) GetProviderType() string    { return "memory" }

func testMetrics() *metrics.MetricsRegistry {
	return metrics.NewMetricsRegistry(prometheus.NewRegistry())
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func newSighting(id, species string, observedAt time.Time) gormModels.Sighting {
	return gormModels.Sighting{
		ID:                id,
		Species:           species,
		ReporterFirstName: "John",
		ReporterLastName:  "Kamau",
		Status:            "normal",
		Latitude:          -1.2921,
		Longitude:         34.7516,
		ObservedAt:        observedAt,
	}
}
