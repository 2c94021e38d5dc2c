package health

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/nethealth/internal/domain"
	"github.com/hamed0406/nethealth/internal/history"
	"github.com/hamed0406/nethealth/internal/probe"
)

// fakeGroup is a controllable group runner.
type fakeGroup struct {
	name    string
	result  domain.GroupResult
	reasons []string
	block   bool // hang until the run context is cancelled
	panics  bool
}

func (f *fakeGroup) Name() string { return f.name }

func (f *fakeGroup) Run(ctx context.Context, log *probe.FailureLog) domain.GroupResult {
	if f.panics {
		panic("boom in " + f.name)
	}
	if f.block {
		<-ctx.Done()
		return domain.GroupResult{}
	}
	for _, r := range f.reasons {
		log.Append(r)
	}
	return f.result
}

func newTestChecker(tracker *history.Tracker, groups ...GroupRunner) *Checker {
	c := New(nil, tracker)
	c.Groups = groups
	return c
}

func passing(name string, count, total int) *fakeGroup {
	return &fakeGroup{name: name, result: domain.GroupResult{Success: true, SuccessCount: count, TotalCount: total}}
}

func failing(name string, count, total int) *fakeGroup {
	return &fakeGroup{name: name, result: domain.GroupResult{Success: false, SuccessCount: count, TotalCount: total}}
}

func TestChecker_AllGroupsPass(t *testing.T) {
	store := history.NewMemory()
	c := newTestChecker(history.NewTracker(store, nil),
		passing("tcp", 10, 10),
		passing("http", 3, 3),
		passing("dns", 4, 4),
	)

	res := c.Run(context.Background())

	if !res.Status {
		t.Fatalf("want online verdict, got %+v", res)
	}
	if res.Confidence != 100.0 {
		t.Fatalf("want confidence 100, got %v", res.Confidence)
	}
	if res.PassedChecks != 3 || res.TotalChecks != 3 {
		t.Fatalf("want 3/3 passed, got %d/%d", res.PassedChecks, res.TotalChecks)
	}
	if len(res.FailedReasons) != 0 {
		t.Fatalf("want no failure reasons, got %v", res.FailedReasons)
	}
	if c.LastState() != StateCompleted {
		t.Fatalf("want completed state, got %s", c.LastState())
	}
	if v, _ := store.ReadSlot(context.Background(), 1); v != 3 {
		t.Fatalf("history slot 1 should hold 3, got %v", v)
	}
}

func TestChecker_TCPFailureIsHardGate(t *testing.T) {
	c := newTestChecker(nil,
		failing("tcp", 4, 10),
		passing("http", 3, 3),
		passing("dns", 4, 4),
	)
	res := c.Run(context.Background())
	if res.Status {
		t.Fatalf("tcp failure must force offline, got %+v", res)
	}
	if res.PassedChecks != 2 {
		t.Fatalf("want 2 passed groups, got %d", res.PassedChecks)
	}
}

func TestChecker_HTTPFailureIsHardGate(t *testing.T) {
	// tcp 10/10 (45) + dns 4/4 (20) = 65 >= 60, but http is a hard gate.
	c := newTestChecker(nil,
		passing("tcp", 10, 10),
		failing("http", 0, 3),
		passing("dns", 4, 4),
	)
	res := c.Run(context.Background())
	if res.Status {
		t.Fatalf("http failure must force offline despite confidence %v", res.Confidence)
	}
	if res.Confidence != 65.0 {
		t.Fatalf("want confidence 65, got %v", res.Confidence)
	}
}

func TestChecker_ConfidenceGateIsStrict(t *testing.T) {
	// tcp 5/10 (22.5) + http 3/3 (35) = 57.5 < 60 even though both gates pass.
	c := newTestChecker(nil,
		passing("tcp", 5, 10),
		passing("http", 3, 3),
		failing("dns", 1, 4),
	)
	res := c.Run(context.Background())
	if res.Status {
		t.Fatalf("confidence %v below 60 must force offline", res.Confidence)
	}
	if res.Confidence != 57.5 {
		t.Fatalf("want confidence 57.5, got %v", res.Confidence)
	}
}

func TestChecker_DNSNotRequiredForStatus(t *testing.T) {
	// DNS fails its threshold; tcp 10/10 + http 3/3 = 80 >= 60 -> online.
	c := newTestChecker(nil,
		passing("tcp", 10, 10),
		passing("http", 3, 3),
		failing("dns", 0, 4),
	)
	res := c.Run(context.Background())
	if !res.Status {
		t.Fatalf("dns is not a status gate, got %+v", res)
	}
}

func TestChecker_Timeout(t *testing.T) {
	store := history.NewMemory()
	_ = store.WriteSlot(context.Background(), 1, 3)
	c := newTestChecker(history.NewTracker(store, nil),
		passing("tcp", 10, 10),
		passing("http", 3, 3),
		&fakeGroup{name: "dns", block: true},
	)
	c.Timeout = 50 * time.Millisecond

	res := c.Run(context.Background())

	if res.Status || res.Confidence != 0 {
		t.Fatalf("timed-out run must be offline with zero confidence, got %+v", res)
	}
	if len(res.Checks) != 0 {
		t.Fatalf("timed-out run must have empty checks, got %+v", res.Checks)
	}
	if len(res.FailedReasons) != 1 || !strings.Contains(res.FailedReasons[0], "timed out") {
		t.Fatalf("want single timed-out reason, got %v", res.FailedReasons)
	}
	if c.LastState() != StateTimedOut {
		t.Fatalf("want timed_out state, got %s", c.LastState())
	}
	if v, _ := store.ReadSlot(context.Background(), 1); v != 0 {
		t.Fatalf("history must record 0 on timeout, got %v", v)
	}
	if v, _ := store.ReadSlot(context.Background(), 2); v != 3 {
		t.Fatalf("previous value must shift to slot 2, got %v", v)
	}
}

func TestChecker_PanicBecomesCrashedVerdict(t *testing.T) {
	store := history.NewMemory()
	c := newTestChecker(history.NewTracker(store, nil),
		passing("tcp", 10, 10),
		passing("http", 3, 3),
		&fakeGroup{name: "dns", panics: true},
	)

	res := c.Run(context.Background())

	if res.Status || res.Confidence != 0 || len(res.Checks) != 0 {
		t.Fatalf("crashed run must be a degraded verdict, got %+v", res)
	}
	if len(res.FailedReasons) != 1 || !strings.HasPrefix(res.FailedReasons[0], "System error: ") {
		t.Fatalf("want System error reason, got %v", res.FailedReasons)
	}
	if !strings.Contains(res.FailedReasons[0], "boom") {
		t.Fatalf("want panic message in reason, got %v", res.FailedReasons)
	}
	if c.LastState() != StateCrashed {
		t.Fatalf("want crashed state, got %s", c.LastState())
	}
	if v, _ := store.ReadSlot(context.Background(), 1); v != 0 {
		t.Fatalf("history must record 0 on crash, got %v", v)
	}
}

func TestChecker_CollectsFailureReasons(t *testing.T) {
	c := newTestChecker(nil,
		&fakeGroup{name: "tcp", result: domain.GroupResult{Success: true, SuccessCount: 9, TotalCount: 10},
			reasons: []string{"TCP 443 to GitHub failed: connection refused"}},
		passing("http", 3, 3),
		passing("dns", 4, 4),
	)
	res := c.Run(context.Background())
	if len(res.FailedReasons) != 1 || !strings.Contains(res.FailedReasons[0], "GitHub") {
		t.Fatalf("probe diagnostics must surface in the verdict, got %v", res.FailedReasons)
	}
	if !res.Status {
		t.Fatalf("partial failures below threshold must not flip the verdict: %+v", res)
	}
}

func TestChecker_DefaultGroupsWireAllThreeProtocols(t *testing.T) {
	c := New(nil, nil)
	if len(c.Groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(c.Groups))
	}
	names := map[string]bool{}
	for _, g := range c.Groups {
		names[g.Name()] = true
	}
	for _, want := range []string{"dns", "tcp", "http"} {
		if !names[want] {
			t.Fatalf("missing default group %q", want)
		}
	}
	if c.Timeout != RunTimeout {
		t.Fatalf("want default timeout %v, got %v", RunTimeout, c.Timeout)
	}
	if c.LastState() != StateIdle {
		t.Fatalf("fresh checker must be idle, got %s", c.LastState())
	}
}
