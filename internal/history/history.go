// Package history keeps a small rolling window of recent passed-check
// counts in an external, durable store.
package history

import (
	"context"

	"go.uber.org/zap"
)

// WindowSize is the number of rolling slots.
const WindowSize = 3

// Store persists numbered slots. Slot indexes run 1..WindowSize, slot 1
// being the most recent value.
type Store interface {
	ReadSlot(ctx context.Context, slot int) (float64, error)
	WriteSlot(ctx context.Context, slot int, value float64) error
}

// Tracker shifts the window on every run: each value moves one slot back,
// the oldest is dropped and the newest lands in slot 1. Store faults are
// logged and swallowed; history updates are best-effort.
type Tracker struct {
	store  Store
	logger *zap.Logger
}

func NewTracker(store Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: store, logger: logger}
}

// Record shifts the window and inserts passed at the front. The old values
// are snapshotted before any write so the shift cannot clobber itself.
func (t *Tracker) Record(ctx context.Context, passed int) {
	snapshot := make([]float64, 0, WindowSize-1)
	for slot := 1; slot < WindowSize; slot++ {
		v, err := t.store.ReadSlot(ctx, slot)
		if err != nil {
			t.logger.Warn("history_read_failed", zap.Int("slot", slot), zap.Error(err))
			return
		}
		snapshot = append(snapshot, v)
	}
	for slot := WindowSize; slot > 1; slot-- {
		if err := t.store.WriteSlot(ctx, slot, snapshot[slot-2]); err != nil {
			t.logger.Warn("history_write_failed", zap.Int("slot", slot), zap.Error(err))
			return
		}
	}
	if err := t.store.WriteSlot(ctx, 1, float64(passed)); err != nil {
		t.logger.Warn("history_write_failed", zap.Int("slot", 1), zap.Error(err))
		return
	}
	t.logger.Debug("history_updated", zap.Int("passed_checks", passed))
}

// Window reads the current slots, newest first.
func (t *Tracker) Window(ctx context.Context) ([]float64, error) {
	out := make([]float64, 0, WindowSize)
	for slot := 1; slot <= WindowSize; slot++ {
		v, err := t.store.ReadSlot(ctx, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
