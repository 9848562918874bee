package services

import (
	"context"

	"charlesfind/safaritracker/internal/common"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

// AlertNotifier hands urgent sightings to the alert pipeline
type AlertNotifier interface {
	NotifyUrgent(ctx context.Context, sighting *gormModels.Sighting) error
}

// QueueNotifier appends alerts to a Redis stream for the alert worker
type QueueNotifier struct {
	queue  *common.RedisQueueService
	stream string
}

var _ AlertNotifier = (*QueueNotifier)(nil)

func NewQueueNotifier(queue *common.RedisQueueService, stream string) *QueueNotifier {
	return &QueueNotifier{queue: queue, stream: stream}
}

func (n *QueueNotifier) NotifyUrgent(ctx context.Context, sighting *gormModels.Sighting) error {
	return n.queue.EnqueueAlert(ctx, n.stream, AlertFromSighting(sighting))
}

// NopNotifier drops alerts; used when Redis is not configured
type NopNotifier struct{}

func (NopNotifier) NotifyUrgent(context.Context, *gormModels.Sighting) error { return nil }

func AlertFromSighting(s *gormModels.Sighting) *common.UrgentAlertItem {
	item := &common.UrgentAlertItem{
		SightingID: s.ID,
		Species:    s.Species,
		Reporter:   s.ReporterName(),
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		ObservedAt: s.ObservedAt,
	}
	if s.Notes != nil {
		item.Notes = *s.Notes
	}
	if s.LocationDescription != nil {
		item.Location = *s.LocationDescription
	}
	return item
}
