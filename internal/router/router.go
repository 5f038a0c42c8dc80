package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/multicloud-ai/inference-gateway/internal/inference"
	"github.com/multicloud-ai/inference-gateway/internal/metrics"
	"github.com/multicloud-ai/inference-gateway/internal/provider"
	"github.com/multicloud-ai/inference-gateway/internal/strategy"
)

// Router dispatches inference requests to providers.
type Router struct {
	registry *provider.Registry
	strategy strategy.Strategy
	client   *inference.Client
	logger   *slog.Logger
}

func New(registry *provider.Registry, strat strategy.Strategy, client *inference.Client, logger *slog.Logger) *Router {
	return &Router{
		registry: registry,
		strategy: strat,
		client:   client,
		logger:   logger,
	}
}

// Route selects a provider for the request and forwards it in a single
// dispatch attempt. An explicit override wins regardless of recorded
// availability; otherwise the strategy picks among the providers currently
// marked available. An empty available set without an override fails with
// inference.ErrNoProviderAvailable before any network call.
func (rt *Router) Route(ctx context.Context, req inference.Request) (*inference.Response, error) {
	chosen, err := rt.selectProvider(req)
	if err != nil {
		return nil, err
	}

	rt.logger.Info("Forwarding inference request",
		slog.String("provider", chosen.Name()),
		slog.Bool("override", req.CloudProvider != ""))

	resp, err := rt.client.Predict(ctx, chosen, req)
	if err != nil {
		return nil, err
	}

	metrics.ObserveInference(resp.Model, chosen.Name(), resp.Latency)

	return resp, nil
}

func (rt *Router) selectProvider(req inference.Request) (*provider.Provider, error) {
	if req.CloudProvider != "" {
		p, ok := rt.registry.Lookup(req.CloudProvider)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q", req.CloudProvider)
		}
		return p, nil
	}

	available := rt.registry.Available()
	if len(available) == 0 {
		return nil, inference.ErrNoProviderAvailable
	}

	chosen := rt.strategy.SelectProvider(available)
	if chosen == nil {
		return nil, inference.ErrNoProviderAvailable
	}

	return chosen, nil
}
