package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/metrics"

	"go.uber.org/zap"
)

// UrgentAlertWorker forwards queued urgent sightings to the publisher
type UrgentAlertWorker struct {
	workerID   string
	stream     string
	group      string
	blockTime  time.Duration
	staleAfter time.Duration
	redisQueue *common.RedisQueueService
	publisher  common.AlertPublisher
	metrics    *metrics.MetricsRegistry
	logger     *zap.Logger
}

// NewUrgentAlertWorker creates a worker on the urgent alert stream
func NewUrgentAlertWorker(
	workerID string,
	redisQueue *common.RedisQueueService,
	publisher common.AlertPublisher,
	reg *metrics.MetricsRegistry,
	logger *zap.Logger,
) *UrgentAlertWorker {
	return &UrgentAlertWorker{
		workerID:   workerID,
		stream:     constants.UrgentAlertStream,
		group:      constants.UrgentAlertGroup,
		blockTime:  5 * time.Second,
		staleAfter: 2 * time.Minute,
		redisQueue: redisQueue,
		publisher:  publisher,
		metrics:    reg,
		logger:     logger,
	}
}

// Start runs numWorkers consumers plus the stale-message claimer until ctx
// is cancelled
func (w *UrgentAlertWorker) Start(ctx context.Context, numWorkers int) error {
	w.logger.Info("Starting urgent alert workers",
		zap.Int("workers", numWorkers),
		zap.String("stream", w.stream),
	)

	if err := w.redisQueue.CreateConsumerGroup(ctx, w.stream, w.group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		consumer := fmt.Sprintf("%s-%d", w.workerID, i)
		go func() {
			defer wg.Done()
			w.processQueue(ctx, consumer)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.claimStaleMessages(ctx, w.workerID+"-claimer")
	}()

	wg.Wait()
	w.logger.Info("All urgent alert workers stopped")
	return nil
}

func (w *UrgentAlertWorker) processQueue(ctx context.Context, consumer string) {
	log := w.logger.With(zap.String("consumer", consumer))
	log.Info("Started processing alerts")

	processed, failed := 0, 0
	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down", zap.Int("processed", processed), zap.Int("errors", failed))
			return
		default:
		}

		if w.processNext(ctx, consumer) {
			processed++
		} else {
			failed++
		}
	}
}

// processNext handles at most one message. It returns false only when a
// message was read and could not be published.
func (w *UrgentAlertWorker) processNext(ctx context.Context, consumer string) bool {
	item, messageID, err := w.redisQueue.DequeueAlert(ctx, w.stream, w.group, consumer, w.blockTime)
	if err != nil {
		if messageID != "" {
			// unreadable payload; ack so it is not redelivered forever
			w.logger.Error("Dropping malformed alert", zap.String("message_id", messageID), zap.Error(err))
			w.ack(ctx, messageID)
			return false
		}
		if ctx.Err() == nil {
			w.logger.Error("Error dequeuing alert", zap.Error(err))
			time.Sleep(time.Second)
		}
		return true
	}
	if item == nil {
		return true
	}

	ok := w.publish(ctx, item)
	w.ack(ctx, messageID)
	return ok
}

func (w *UrgentAlertWorker) publish(ctx context.Context, item *common.UrgentAlertItem) bool {
	if err := w.publisher.Publish(ctx, item); err != nil {
		w.metrics.UrgentAlertsTotal.WithLabelValues("publish", "error").Inc()
		w.logger.Error("Failed to publish urgent alert",
			zap.String("sighting_id", item.SightingID),
			zap.Error(err),
		)
		return false
	}
	w.metrics.UrgentAlertsTotal.WithLabelValues("publish", "ok").Inc()
	return true
}

func (w *UrgentAlertWorker) ack(ctx context.Context, messageID string) {
	if err := w.redisQueue.AckAlert(ctx, w.stream, w.group, messageID); err != nil {
		w.logger.Error("Error acknowledging alert", zap.String("message_id", messageID), zap.Error(err))
	}
}

// claimStaleMessages periodically takes over alerts a dead consumer left unacked
func (w *UrgentAlertWorker) claimStaleMessages(ctx context.Context, consumer string) {
	ticker := time.NewTicker(w.staleAfter)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.reclaim(ctx, consumer)
		}
	}
}

func (w *UrgentAlertWorker) reclaim(ctx context.Context, consumer string) int {
	items, ids, err := w.redisQueue.ClaimStaleAlerts(ctx, w.stream, w.group, consumer, w.staleAfter)
	if err != nil {
		w.logger.Error("Error claiming stale alerts", zap.Error(err))
		return 0
	}

	for i, item := range items {
		w.publish(ctx, item)
		w.ack(ctx, ids[i])
	}
	if len(items) > 0 {
		w.logger.Info("Reclaimed stale alerts", zap.Int("count", len(items)))
	}
	return len(items)
}
