// internal/app/system/workers/notificationcleanup.go
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/metrics"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cleaner removes read notifications older than a given age.
type Cleaner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// NotificationCleanup is a background worker that runs the notification
// retention sweep on a cron schedule.
type NotificationCleanup struct {
	store     Cleaner
	log       *zap.Logger
	schedule  string
	retention time.Duration
	cron      *cron.Cron
}

// NewNotificationCleanup creates a cleanup worker.
//
// Parameters:
//   - store: the notifications store
//   - logger: zap logger for logging
//   - schedule: standard cron spec or descriptor (e.g., "@daily")
//   - retention: read notifications older than this are deleted (e.g., 30 days)
func NewNotificationCleanup(store Cleaner, logger *zap.Logger, schedule string, retention time.Duration) (*NotificationCleanup, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("bad cleanup schedule %q: %w", schedule, err)
	}
	return &NotificationCleanup{
		store:     store,
		log:       logger,
		schedule:  schedule,
		retention: retention,
	}, nil
}

// Start registers the sweep and begins the scheduler.
func (w *NotificationCleanup) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { _, _ = w.RunOnce(context.Background()) }); err != nil {
		return err
	}
	w.cron = c
	c.Start()
	w.log.Info("notification cleanup worker started",
		zap.String("schedule", w.schedule),
		zap.Duration("retention", w.retention))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (w *NotificationCleanup) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	w.log.Info("notification cleanup worker stopped")
}

// RunOnce performs one sweep.
func (w *NotificationCleanup) RunOnce(parent context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(parent, timeouts.Long())
	defer cancel()

	count, err := w.store.Cleanup(ctx, w.retention)
	if err != nil {
		w.log.Error("failed to clean up notifications", zap.Error(err))
		return 0, err
	}
	metrics.NotificationsCleaned(count)
	if count > 0 {
		w.log.Info("deleted read notifications", zap.Int64("count", count))
	}
	return count, nil
}
