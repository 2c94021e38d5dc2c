package probe

import (
	"sync"
	"time"
)

// Outcome is the result of a single probe against a single target.
// It is created once per probe call and never mutated.
type Outcome struct {
	Success bool
	Reason  string
}

// Timeouts for individual probes. The orchestrator's overall deadline is
// separate; these fire on their own regardless of it.
const (
	DNSTimeout  = 5 * time.Second
	TCPTimeout  = 5 * time.Second
	HTTPTimeout = 5 * time.Second
)

// FailureLog collects human-readable failure reasons from all probes of one
// run. Probes append concurrently; no append is ever dropped, but the order
// follows completion order and callers must not depend on it.
type FailureLog struct {
	mu      sync.Mutex
	reasons []string
}

func NewFailureLog() *FailureLog {
	return &FailureLog{}
}

func (l *FailureLog) Append(reason string) {
	l.mu.Lock()
	l.reasons = append(l.reasons, reason)
	l.mu.Unlock()
}

// Reasons returns a copy of the collected reasons.
func (l *FailureLog) Reasons() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.reasons))
	copy(out, l.reasons)
	return out
}

func (l *FailureLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reasons)
}
