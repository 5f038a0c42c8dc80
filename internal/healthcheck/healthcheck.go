package healthcheck

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/multicloud-ai/inference-gateway/internal/metrics"
	"github.com/multicloud-ai/inference-gateway/internal/provider"
)

// Tracker keeps the registry's availability snapshot eventually accurate by
// polling each provider's health endpoint.
type Tracker struct {
	registry *provider.Registry
	client   *http.Client
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewTracker creates a tracker that refreshes every interval and bounds each
// probe by timeout.
func NewTracker(registry *provider.Registry, interval, timeout time.Duration, logger *slog.Logger) *Tracker {
	return &Tracker{
		registry: registry,
		client: &http.Client{
			Timeout: timeout,
		},
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run refreshes once immediately, then on every tick until the context is
// cancelled.
func (t *Tracker) Run(ctx context.Context) {
	t.Refresh(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Health tracker stopped")
			return

		case <-ticker.C:
			t.Refresh(ctx)
		}
	}
}

// Refresh probes every provider concurrently and swaps the gathered results
// into the registry as a single batch. A provider that times out or errors is
// marked unavailable without affecting the other probes.
func (t *Tracker) Refresh(ctx context.Context) {
	previous := t.registry.Snapshot()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(provider.Snapshot, len(t.registry.All()))
	)

	for _, p := range t.registry.All() {
		wg.Add(1)
		go func(p *provider.Provider) {
			defer wg.Done()

			healthy := t.probe(ctx, p)

			mu.Lock()
			results[p.Name()] = healthy
			mu.Unlock()
		}(p)
	}

	wg.Wait()
	t.registry.SetSnapshot(results)

	for name, healthy := range results {
		metrics.SetProviderUp(name, healthy)

		if healthy == previous[name] {
			continue
		}
		if healthy {
			t.logger.Info("Provider is back up", slog.String("provider", name))
		} else {
			t.logger.Warn("Provider is down", slog.String("provider", name))
		}
	}
}

func (t *Tracker) probe(ctx context.Context, p *provider.Provider) bool {
	probeCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.HealthURL(), nil)
	if err != nil {
		return false
	}

	res, err := t.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK
}
