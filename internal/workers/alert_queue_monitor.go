package workers

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/constants"

	"go.uber.org/zap"
)

// alertStreamMaxLen bounds the acknowledged history kept in the stream
const alertStreamMaxLen = 1000

// AlertQueueMonitor logs urgent alert queue depth and trims the stream
type AlertQueueMonitor struct {
	redisQueue *common.RedisQueueService
	logger     *zap.Logger
}

func NewAlertQueueMonitor(redisQueue *common.RedisQueueService, logger *zap.Logger) *AlertQueueMonitor {
	return &AlertQueueMonitor{redisQueue: redisQueue, logger: logger}
}

// Start begins monitoring until ctx is cancelled
func (m *AlertQueueMonitor) Start(ctx context.Context, interval time.Duration) {
	m.logger.Info("Starting alert queue monitoring", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	m.checkQueue(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Alert queue monitor shutting down")
			return
		case <-ticker.C:
			m.checkQueue(ctx)
		}
	}
}

func (m *AlertQueueMonitor) checkQueue(ctx context.Context) {
	length, err := m.redisQueue.GetQueueLength(ctx, constants.UrgentAlertStream)
	if err != nil {
		m.logger.Error("Error reading alert queue length", zap.Error(err))
		return
	}

	pending, err := m.redisQueue.GetPendingCount(ctx, constants.UrgentAlertStream, constants.UrgentAlertGroup)
	if err != nil {
		m.logger.Error("Error reading pending alerts", zap.Error(err))
		return
	}

	if pending > 0 {
		m.logger.Warn("Urgent alerts awaiting delivery",
			zap.Int64("stream_length", length),
			zap.Int64("pending", pending),
		)
	}

	if length > alertStreamMaxLen {
		if err := m.redisQueue.TrimStream(ctx, constants.UrgentAlertStream, alertStreamMaxLen); err != nil {
			m.logger.Error("Error trimming alert stream", zap.Error(err))
		}
	}
}
