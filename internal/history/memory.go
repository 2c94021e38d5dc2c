package history

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps slots in memory. Used when no durable path is configured
// and by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[int]float64
}

func NewMemory() *MemoryStore {
	s := &MemoryStore{slots: make(map[int]float64, WindowSize)}
	for slot := 1; slot <= WindowSize; slot++ {
		s.slots[slot] = 0
	}
	return s
}

func (s *MemoryStore) ReadSlot(ctx context.Context, slot int) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[slot]
	if !ok {
		return 0, fmt.Errorf("history slot %d not initialized", slot)
	}
	return v, nil
}

func (s *MemoryStore) WriteSlot(ctx context.Context, slot int, value float64) error {
	if slot < 1 || slot > WindowSize {
		return fmt.Errorf("history slot %d out of range", slot)
	}
	s.mu.Lock()
	s.slots[slot] = value
	s.mu.Unlock()
	return nil
}
