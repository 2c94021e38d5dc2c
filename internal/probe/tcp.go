package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
)

// DefaultTCPTargets are the hosts probed by the TCP group.
var DefaultTCPTargets = []domain.Target{
	{Host: "google.com", Name: "Google"},
	{Host: "amazon.com", Name: "Amazon"},
	{Host: "cloudflare.com", Name: "Cloudflare"},
	{Host: "github.com", Name: "GitHub"},
	{Host: "microsoft.com", Name: "Microsoft"},
}

// DefaultTCPPorts are probed on every TCP target.
var DefaultTCPPorts = []int{80, 443}

// Dialer is satisfied by *net.Dialer; tests swap in fakes.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// TCPGroup attempts a plain TCP connect to every target x port pair and
// closes the connection cleanly. It passes when at least half of the probes
// connect within the per-probe timeout.
type TCPGroup struct {
	Targets []domain.Target
	Ports   []int
	Timeout time.Duration
	Dialer  Dialer
	Logger  *zap.Logger
}

func NewTCPGroup(logger *zap.Logger) *TCPGroup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TCPGroup{
		Targets: DefaultTCPTargets,
		Ports:   DefaultTCPPorts,
		Timeout: TCPTimeout,
		Dialer:  &net.Dialer{},
		Logger:  logger,
	}
}

func (g *TCPGroup) Name() string { return "tcp" }

// Run launches every host/port probe concurrently. Failed probes never cancel
// their siblings; only the caller's context does.
func (g *TCPGroup) Run(ctx context.Context, log *FailureLog) domain.GroupResult {
	total := len(g.Targets) * len(g.Ports)
	outcomes := make([]Outcome, total)

	var wg sync.WaitGroup
	for ti, tgt := range g.Targets {
		for pi, port := range g.Ports {
			wg.Add(1)
			go func(idx int, tgt domain.Target, port int) {
				defer wg.Done()
				outcomes[idx] = g.connect(ctx, tgt, port)
			}(ti*len(g.Ports)+pi, tgt, port)
		}
	}
	wg.Wait()

	details := make(map[string]map[string]bool, len(g.Targets))
	success := 0
	for ti, tgt := range g.Targets {
		ports := make(map[string]bool, len(g.Ports))
		for pi, port := range g.Ports {
			out := outcomes[ti*len(g.Ports)+pi]
			ports["port_"+strconv.Itoa(port)] = out.Success
			if out.Success {
				success++
			} else {
				log.Append(fmt.Sprintf("TCP %d to %s failed: %s", port, tgt.Name, out.Reason))
			}
		}
		details[strings.ToLower(tgt.Name)] = ports
	}

	return domain.GroupResult{
		Success:      success >= total/2,
		SuccessCount: success,
		TotalCount:   total,
		PortDetails:  details,
	}
}

func (g *TCPGroup) connect(ctx context.Context, tgt domain.Target, port int) Outcome {
	dctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	addr := net.JoinHostPort(tgt.Host, strconv.Itoa(port))
	conn, err := g.Dialer.DialContext(dctx, "tcp", addr)
	if err != nil {
		g.Logger.Debug("tcp_probe_error", zap.String("addr", addr), zap.Error(err))
		return Outcome{Reason: err.Error()}
	}
	// Close with FIN rather than abandoning the connection.
	if err := conn.Close(); err != nil {
		return Outcome{Reason: "close failed: " + err.Error()}
	}
	g.Logger.Debug("tcp_probe_ok", zap.String("addr", addr))
	return Outcome{Success: true}
}
