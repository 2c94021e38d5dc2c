package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
)

// DefaultHTTPURLs are fetched by the HTTP group. Plain HTTP on purpose: the
// probe tests reachability, not TLS.
var DefaultHTTPURLs = []string{
	"http://www.google.com",
	"http://www.cloudflare.com",
	"http://www.apple.com",
}

// HTTPGroup issues a GET against every URL over one pooled client that lives
// for the duration of the run. A probe passes only on status 200.
type HTTPGroup struct {
	URLs    []string
	Timeout time.Duration
	Logger  *zap.Logger

	// NewClient builds the per-run client; nil means a default pooled client.
	NewClient func() *http.Client
}

func NewHTTPGroup(logger *zap.Logger) *HTTPGroup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGroup{
		URLs:    DefaultHTTPURLs,
		Timeout: HTTPTimeout,
		Logger:  logger,
	}
}

func (g *HTTPGroup) Name() string { return "http" }

func (g *HTTPGroup) Run(ctx context.Context, log *FailureLog) domain.GroupResult {
	client := g.client()
	defer client.CloseIdleConnections()

	outcomes := make([]Outcome, len(g.URLs))
	var wg sync.WaitGroup
	for i, url := range g.URLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			outcomes[i] = g.fetch(ctx, client, url)
		}(i, url)
	}
	wg.Wait()

	details := make(map[string]bool, len(g.URLs))
	success := 0
	for i, url := range g.URLs {
		out := outcomes[i]
		details[url] = out.Success
		if out.Success {
			success++
		} else {
			log.Append(fmt.Sprintf("HTTP check to %s failed: %s", url, out.Reason))
		}
	}

	return domain.GroupResult{
		Success:      success >= len(g.URLs)/2,
		SuccessCount: success,
		TotalCount:   len(g.URLs),
		Details:      details,
	}
}

func (g *HTTPGroup) client() *http.Client {
	if g.NewClient != nil {
		return g.NewClient()
	}
	return &http.Client{
		Timeout:   g.Timeout,
		Transport: &http.Transport{MaxIdleConnsPerHost: 2},
	}
}

func (g *HTTPGroup) fetch(ctx context.Context, client *http.Client, url string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Reason: err.Error()}
	}
	resp, err := client.Do(req)
	if err != nil {
		g.Logger.Debug("http_probe_error", zap.String("url", url), zap.Error(err))
		return Outcome{Reason: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK {
		return Outcome{Reason: fmt.Sprintf("unexpected status %s", resp.Status)}
	}
	g.Logger.Debug("http_probe_ok", zap.String("url", url))
	return Outcome{Success: true}
}
