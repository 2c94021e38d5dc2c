package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
	"github.com/hamed0406/nethealth/internal/publish"
)

// HealthRunner performs one health-check run.
type HealthRunner interface {
	Run(ctx context.Context) domain.CheckResult
}

// Runner re-runs the health check on a fixed interval and pushes every
// verdict to the configured sinks.
type Runner struct {
	Logger   *zap.Logger
	Checker  HealthRunner
	Sinks    publish.Multi
	Interval time.Duration
}

func NewRunner(logger *zap.Logger, checker HealthRunner, sinks publish.Multi, interval time.Duration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Logger: logger, Checker: checker, Sinks: sinks, Interval: interval}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled. Interval 0 disables the loop.
func (r *Runner) Run(ctx context.Context) {
	if r.Interval == 0 {
		r.Logger.Info("scheduler_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	result := r.Checker.Run(ctx)
	if err := r.Sinks.Publish(ctx, result); err != nil {
		r.Logger.Warn("scheduler_publish_error", zap.Error(err))
	}
}
