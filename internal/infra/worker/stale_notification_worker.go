package worker

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-leads/internal/infra/metrics"
	"go.uber.org/zap"
)

type StaleCounter interface {
	CountStalePending(ctx context.Context, olderThan time.Time) (int, error)
}

// StaleNotificationWorker reports leads whose invitation has been pending
// longer than the threshold, usually because the process restarted before
// the delayed send fired. It only reports.
type StaleNotificationWorker struct {
	leads        StaleCounter
	threshold    time.Duration
	tickInterval time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewStaleNotificationWorker(leads StaleCounter, threshold time.Duration, logger *zap.Logger) *StaleNotificationWorker {
	return &StaleNotificationWorker{
		leads:        leads,
		threshold:    threshold,
		tickInterval: time.Minute,
		logger:       logger,
		now:          time.Now,
	}
}

func (w *StaleNotificationWorker) Start(ctx context.Context) {
	w.logger.Info("stale notification monitor started", zap.Duration("threshold", w.threshold))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale notification monitor stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *StaleNotificationWorker) check(ctx context.Context) {
	n, err := w.leads.CountStalePending(ctx, w.now().Add(-w.threshold))
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("failed to count stale notifications", zap.Error(err))
		}
		return
	}

	metrics.SetStaleNotifications(n)
	if n > 0 {
		w.logger.Warn("notifications stuck in pending",
			zap.Int("count", n),
			zap.Duration("older_than", w.threshold),
		)
	}
}
