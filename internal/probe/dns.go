package probe

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
)

// DefaultNameservers are the public resolvers probed by the DNS group.
var DefaultNameservers = []domain.Target{
	{Host: "8.8.8.8", Name: "Google"},
	{Host: "1.1.1.1", Name: "Cloudflare"},
	{Host: "9.9.9.9", Name: "Quad9"},
	{Host: "208.67.222.222", Name: "OpenDNS"},
}

// DefaultDNSQuery is resolved against every nameserver in the group.
const DefaultDNSQuery = "google.com"

// Exchanger sends one DNS query to one server and returns the response.
type Exchanger interface {
	Exchange(ctx context.Context, server string, msg *dns.Msg) (*dns.Msg, time.Duration, error)
}

type udpExchanger struct {
	timeout time.Duration
}

func (t *udpExchanger) Exchange(ctx context.Context, server string, msg *dns.Msg) (*dns.Msg, time.Duration, error) {
	client := &dns.Client{Net: "udp", Timeout: t.timeout}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < client.Timeout {
		client.Timeout = time.Until(deadline)
	}
	return client.Exchange(msg, server)
}

// DNSGroup resolves a fixed query name through each configured nameserver and
// passes when a majority-adjacent threshold of them answer.
type DNSGroup struct {
	Nameservers []domain.Target
	QueryName   string
	Timeout     time.Duration
	Exchanger   Exchanger
	Logger      *zap.Logger
}

func NewDNSGroup(logger *zap.Logger) *DNSGroup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DNSGroup{
		Nameservers: DefaultNameservers,
		QueryName:   DefaultDNSQuery,
		Timeout:     DNSTimeout,
		Exchanger:   &udpExchanger{timeout: DNSTimeout},
		Logger:      logger,
	}
}

func (g *DNSGroup) Name() string { return "dns" }

// Run probes every nameserver concurrently. A probe passes when the server
// returns at least one answer record before the per-query timeout.
func (g *DNSGroup) Run(ctx context.Context, log *FailureLog) domain.GroupResult {
	outcomes := make([]Outcome, len(g.Nameservers))

	var wg sync.WaitGroup
	for i, ns := range g.Nameservers {
		wg.Add(1)
		go func(i int, ns domain.Target) {
			defer wg.Done()
			outcomes[i] = g.query(ctx, ns)
		}(i, ns)
	}
	wg.Wait()

	details := make(map[string]bool, len(g.Nameservers))
	success := 0
	for i, ns := range g.Nameservers {
		out := outcomes[i]
		details[strings.ToLower(ns.Name)] = out.Success
		if out.Success {
			success++
			continue
		}
		log.Append(fmt.Sprintf("DNS (%s) check failed: %s", ns.Name, out.Reason))
	}

	return domain.GroupResult{
		Success:      success >= 2,
		SuccessCount: success,
		TotalCount:   len(g.Nameservers),
		Details:      details,
	}
}

func (g *DNSGroup) query(ctx context.Context, ns domain.Target) Outcome {
	qctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	msg := &dns.Msg{}
	msg.SetQuestion(dns.Fqdn(g.QueryName), dns.TypeA)
	msg.RecursionDesired = true

	server := net.JoinHostPort(ns.Host, "53")
	resp, rtt, err := g.Exchanger.Exchange(qctx, server, msg)
	if err != nil {
		g.Logger.Debug("dns_probe_error", zap.String("server", server), zap.Error(err))
		return Outcome{Reason: err.Error()}
	}
	if resp == nil || resp.Rcode != dns.RcodeSuccess {
		rcode := "no response"
		if resp != nil {
			rcode = dns.RcodeToString[resp.Rcode]
		}
		return Outcome{Reason: "DNS resolution failed: " + rcode}
	}
	if len(resp.Answer) == 0 {
		return Outcome{Reason: "DNS resolution failed: empty answer"}
	}

	g.Logger.Debug("dns_probe_ok",
		zap.String("server", server),
		zap.Int("answers", len(resp.Answer)),
		zap.Duration("rtt", rtt),
	)
	return Outcome{Success: true}
}
