package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
	"github.com/hamed0406/nethealth/internal/history"
	"github.com/hamed0406/nethealth/internal/probe"
)

// State of the orchestrator for the current or most recent run.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateTimedOut  State = "timed_out"
	StateCrashed   State = "crashed"
)

// RunTimeout is the overall deadline for one health-check run. When it fires,
// every still-pending probe is cancelled.
const RunTimeout = 30 * time.Second

// ConfidenceGate is the minimum confidence for an online verdict.
const ConfidenceGate = 60.0

// GroupRunner is one protocol group (dns, tcp or http).
type GroupRunner interface {
	Name() string
	Run(ctx context.Context, log *probe.FailureLog) domain.GroupResult
}

// Checker orchestrates one health-check run: the three groups fan out
// concurrently under a single deadline, their results are scored, the rolling
// history is updated best-effort, and a verdict comes back. Runs are
// independent of each other.
type Checker struct {
	Logger  *zap.Logger
	Groups  []GroupRunner
	History *history.Tracker
	Timeout time.Duration

	state atomic.Value // State
}

// New builds a checker with the default probe groups.
func New(logger *zap.Logger, tracker *history.Tracker) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Checker{
		Logger: logger,
		Groups: []GroupRunner{
			probe.NewTCPGroup(logger),
			probe.NewHTTPGroup(logger),
			probe.NewDNSGroup(logger),
		},
		History: tracker,
		Timeout: RunTimeout,
	}
	c.state.Store(StateIdle)
	return c
}

// LastState reports the state of the current or most recent run.
func (c *Checker) LastState() State {
	s, _ := c.state.Load().(State)
	return s
}

type groupOutput struct {
	name string
	res  domain.GroupResult
	err  error
}

// Run performs one health check. Network-level failures are folded into the
// returned verdict; Run itself never fails.
func (c *Checker) Run(ctx context.Context) domain.CheckResult {
	c.state.Store(StateRunning)
	started := time.Now().UTC()
	log := probe.NewFailureLog()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = RunTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.Logger.Info("health_check_started", zap.Int("groups", len(c.Groups)))

	out := make(chan groupOutput, len(c.Groups))
	for _, g := range c.Groups {
		g := g
		go func() {
			defer func() {
				if r := recover(); r != nil {
					out <- groupOutput{name: g.Name(), err: fmt.Errorf("%v", r)}
				}
			}()
			out <- groupOutput{name: g.Name(), res: g.Run(runCtx, log)}
		}()
	}

	checks := make(map[string]domain.GroupResult, len(c.Groups))
	for range c.Groups {
		select {
		case <-runCtx.Done():
			c.state.Store(StateTimedOut)
			c.Logger.Error("health_check_timed_out", zap.Duration("timeout", timeout))
			c.record(ctx, 0)
			return domain.CheckResult{
				Status:        false,
				Timestamp:     started,
				Confidence:    0,
				Checks:        map[string]domain.GroupResult{},
				FailedReasons: []string{"System error: Health check timed out"},
				PassedChecks:  0,
				TotalChecks:   len(c.Groups),
			}
		case o := <-out:
			if o.err != nil {
				c.state.Store(StateCrashed)
				c.Logger.Error("health_check_crashed", zap.String("group", o.name), zap.Error(o.err))
				c.record(ctx, 0)
				return domain.CheckResult{
					Status:        false,
					Timestamp:     started,
					Confidence:    0,
					Checks:        map[string]domain.GroupResult{},
					FailedReasons: []string{"System error: " + o.err.Error()},
					PassedChecks:  0,
					TotalChecks:   len(c.Groups),
				}
			}
			checks[o.name] = o.res
		}
	}

	confidence := Confidence(checks)
	passed := 0
	for _, g := range checks {
		if g.Success {
			passed++
		}
	}
	c.record(ctx, passed)

	// DNS feeds confidence only; the hard gates are TCP and HTTP.
	status := checks["tcp"].Success && checks["http"].Success && confidence >= ConfidenceGate

	c.state.Store(StateCompleted)
	c.Logger.Info("health_check_completed",
		zap.Bool("status", status),
		zap.Float64("confidence", confidence),
		zap.Int("passed_checks", passed),
		zap.Duration("elapsed", time.Since(started)),
	)

	return domain.CheckResult{
		Status:        status,
		Timestamp:     started,
		Confidence:    confidence,
		Checks:        checks,
		FailedReasons: log.Reasons(),
		PassedChecks:  passed,
		TotalChecks:   len(c.Groups),
	}
}

// record updates the rolling history. Failures there never abort a run.
func (c *Checker) record(ctx context.Context, passed int) {
	if c.History == nil {
		return
	}
	c.History.Record(ctx, passed)
}
