package services

import (
	"context"
	"sync"

	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

type FeedPhase string

const (
	FeedPending FeedPhase = "pending"
	FeedReady   FeedPhase = "ready"
	FeedFailed  FeedPhase = "failed"
)

// FeedSnapshot is a consistent read of a Feed
type FeedSnapshot struct {
	Phase   FeedPhase
	Records []gormModels.Sighting
	Err     error
}

// Feed holds the sightings one screen is showing. Every fetch takes a
// sequence number; a result is applied only if no newer fetch has been
// applied already, so a slow early fetch cannot overwrite fresher data.
type Feed struct {
	mu      sync.Mutex
	fetcher SightingFetcher
	limit   int

	phase   FeedPhase
	records []gormModels.Sighting
	err     error

	issued  uint64
	applied uint64
}

func NewFeed(fetcher SightingFetcher, limit int) *Feed {
	return &Feed{
		fetcher: fetcher,
		limit:   limit,
		phase:   FeedPending,
	}
}

// BeginFetch reserves the sequence number for a new fetch
func (f *Feed) BeginFetch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
	return f.issued
}

// Apply records the outcome of fetch seq. It returns false when the
// result is older than what the feed already shows and was discarded.
// A failed fetch keeps the previous records but marks the feed Failed.
func (f *Feed) Apply(seq uint64, records []gormModels.Sighting, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.applied {
		return false
	}
	f.applied = seq

	if err != nil {
		f.phase = FeedFailed
		f.err = err
		return true
	}

	f.phase = FeedReady
	f.records = records
	f.err = nil
	return true
}

// Refresh fetches and applies in one step
func (f *Feed) Refresh(ctx context.Context) error {
	seq := f.BeginFetch()
	records, err := f.fetcher.FetchSightings(ctx, f.limit)
	f.Apply(seq, records, err)
	return err
}

func (f *Feed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	records := make([]gormModels.Sighting, len(f.records))
	copy(records, f.records)
	return FeedSnapshot{
		Phase:   f.phase,
		Records: records,
		Err:     f.err,
	}
}

// Filtered applies the search and species filter to the current records
func (f *Feed) Filtered(query, speciesFilter string) FeedSnapshot {
	snap := f.Snapshot()
	snap.Records = ApplyFilter(snap.Records, query, speciesFilter)
	return snap
}
