// Package publish delivers finished verdicts to external consumers. The core
// never formats a verdict for display; sinks do.
package publish

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
)

// Sink receives each finished verdict.
type Sink interface {
	Publish(ctx context.Context, result domain.CheckResult) error
}

// Multi fans a verdict out to several sinks, returning the first error.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, result domain.CheckResult) error {
	var firstErr error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, result); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// LogSink writes the binary state plus headline numbers to the log, the way
// a host platform would set an online/offline entity.
type LogSink struct {
	Logger *zap.Logger
}

func (s *LogSink) Publish(ctx context.Context, result domain.CheckResult) error {
	state := "offline"
	if result.Status {
		state = "online"
	}
	s.Logger.Info("verdict",
		zap.String("state", state),
		zap.Float64("confidence", result.Confidence),
		zap.Int("passed_checks", result.PassedChecks),
		zap.Int("total_checks", result.TotalChecks),
		zap.Strings("failed_reasons", result.FailedReasons),
	)
	return nil
}
