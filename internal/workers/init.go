package workers

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/metrics"

	"go.uber.org/zap"
)

type WorkersContainer struct {
	AlertWorker  *UrgentAlertWorker
	QueueMonitor *AlertQueueMonitor
}

// InitWorkers starts the urgent alert pipeline's background goroutines.
// They stop when ctx is cancelled.
func InitWorkers(
	ctx context.Context,
	redQ *common.RedisQueueService,
	publisher common.AlertPublisher,
	reg *metrics.MetricsRegistry,
	logger *zap.Logger,
) *WorkersContainer {
	worker := NewUrgentAlertWorker("urgent-alerts", redQ, publisher, reg, logger.Named("urgent_alert_worker"))
	monitor := NewAlertQueueMonitor(redQ, logger.Named("alert_queue_monitor"))

	go func() {
		if err := worker.Start(ctx, 2); err != nil {
			logger.Error("Urgent alert worker stopped", zap.Error(err))
		}
	}()
	go monitor.Start(ctx, 30*time.Second)

	return &WorkersContainer{
		AlertWorker:  worker,
		QueueMonitor: monitor,
	}
}
