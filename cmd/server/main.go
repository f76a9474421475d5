// Command server runs the graphgate Responses API gateway.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, GRAPHGATE_CONFIG env, ./config.yaml, or
// /etc/graphgate/config.yaml), and GRAPHGATE_* environment overrides.
//
// Common environment variables:
//
//	GRAPHGATE_BACKEND_URL - OpenAI-compatible backend URL (required)
//	GRAPHGATE_MODEL       - Model name forwarded to the backend
//	GRAPHGATE_PORT        - Listen port (default: 8080)
//	GRAPHGATE_DEBUG       - Debug categories (e.g. "gateway,graph")
//	GRAPHGATE_LOG_LEVEL   - ERROR, WARN, INFO, DEBUG, TRACE
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/graphgate/graphgate/pkg/config"
	"github.com/graphgate/graphgate/pkg/debug"
	"github.com/graphgate/graphgate/pkg/gateway"
	"github.com/graphgate/graphgate/pkg/graph/openaichat"
	"github.com/graphgate/graphgate/pkg/observability"
	"github.com/graphgate/graphgate/pkg/store"
	transporthttp "github.com/graphgate/graphgate/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	debug.Init("", "")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runner := openaichat.New(openaichat.Config{
		BaseURL: cfg.Runner.BackendURL,
		APIKey:  cfg.Runner.APIKey,
		Model:   cfg.Runner.Model,
	})
	defer runner.Close()

	conversations := store.New(
		store.WithRetention(cfg.Store.Retention),
		store.WithMaxSize(cfg.Store.MaxSize),
	)
	slog.Info("conversation store ready",
		"retention", cfg.Store.Retention, "max_size", cfg.Store.MaxSize)

	gw := gateway.New(runner, conversations, gateway.WithLogger(slog.Default()))

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithAdapterConfig(transporthttp.Config{
			BasePath:    cfg.Server.BasePath,
			MaxBodySize: cfg.Server.MaxBodySize,
			AgentName:   cfg.Gateway.AgentName,
			Version:     cfg.Gateway.Version,
			ModelName:   cfg.Gateway.ModelName,
			OwnedBy:     cfg.Gateway.OwnedBy,
		}),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithHandlerWrapper(observability.MetricsMiddleware),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts, transporthttp.WithExtraHandler(
			"GET "+cfg.Observability.Metrics.Path, promhttp.Handler()))
	}

	srv := transporthttp.NewServer(gw, opts...)

	slog.Info("gateway starting",
		"port", cfg.Server.Port,
		"backend", cfg.Runner.BackendURL,
		"model", cfg.Runner.Model)

	return srv.ListenAndServe()
}
