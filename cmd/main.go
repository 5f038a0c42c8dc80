package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/multicloud-ai/inference-gateway/config"
	"github.com/multicloud-ai/inference-gateway/internal/handler"
	"github.com/multicloud-ai/inference-gateway/internal/healthcheck"
	"github.com/multicloud-ai/inference-gateway/internal/httpserver"
	"github.com/multicloud-ai/inference-gateway/internal/inference"
	"github.com/multicloud-ai/inference-gateway/internal/provider"
	"github.com/multicloud-ai/inference-gateway/internal/router"
	"github.com/multicloud-ai/inference-gateway/internal/strategy"
	"github.com/multicloud-ai/inference-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry, err := buildRegistry(cfg, log)
	if err != nil {
		log.Error("Failed to build provider registry", slog.Any("err", err))
		os.Exit(1)
	}

	tracker, err := buildTracker(cfg, registry, log)
	if err != nil {
		log.Error("Failed to build health tracker", slog.Any("err", err))
		os.Exit(1)
	}
	go tracker.Run(ctx)

	predictTimeout, err := time.ParseDuration(cfg.Inference.Timeout)
	if err != nil {
		log.Error("Invalid inference timeout", slog.Any("err", err))
		os.Exit(1)
	}

	rt := router.New(registry, createStrategy(log, cfg.Selection.Strategy), inference.NewClient(predictTimeout), log)

	inferenceHandler := handler.NewInferenceHandler(log, rt, registry, handler.Limits{
		DefaultMaxTokens:   cfg.Inference.DefaultMaxTokens,
		MaxTokens:          cfg.Inference.MaxTokens,
		DefaultTemperature: cfg.Inference.DefaultTemperature,
	})

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(inferenceHandler))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Gateway listening",
		slog.String("address", cfg.Server.Address),
		slog.String("strategy", cfg.Selection.Strategy),
		slog.Int("providers", len(registry.All())))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting gateway", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func buildRegistry(cfg *config.Config, log *slog.Logger) (*provider.Registry, error) {
	providers := make([]*provider.Provider, 0, len(cfg.Providers))

	for _, pc := range cfg.Providers {
		u, err := url.Parse(pc.URL)
		if err != nil {
			log.Error("Failed to parse provider URL",
				slog.String("provider", pc.Name),
				slog.String("url", pc.URL),
				slog.String("error", err.Error()))
			return nil, err
		}

		providers = append(providers, provider.New(pc.Name, u))
	}

	if len(providers) == 0 {
		return nil, os.ErrInvalid
	}

	return provider.NewRegistry(providers), nil
}

func buildTracker(cfg *config.Config, registry *provider.Registry, log *slog.Logger) (*healthcheck.Tracker, error) {
	interval, err := time.ParseDuration(cfg.HealthCheck.Interval)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.HealthCheck.Timeout)
	if err != nil {
		return nil, err
	}

	return healthcheck.NewTracker(registry, interval, timeout, log), nil
}

func createStrategy(log *slog.Logger, strategyType string) strategy.Strategy {
	switch strategyType {
	case config.StrategyRandom:
		return strategy.NewRandomStrategy()
	case config.StrategyRoundRobin:
		return strategy.NewRoundRobinStrategy()
	default:
		log.Warn("Unknown strategy, defaulting to random", slog.String("requested", strategyType))
		return strategy.NewRandomStrategy()
	}
}
