package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/masking"
	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/config"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/auditsink"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/logger"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/metrics"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/upstream"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver"
)

// @title Tool Gateway API
// @version 1.0
// @description Routes, masks and audits dealer tool calls
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Init(ctx, cfg.Telemetry(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	reg, err := newRegistry(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load tool registry")
	}

	sink, closeSink, err := newAuditSink(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize audit sink")
	}
	defer closeSink()

	upstreamClient := newUpstreamClient(cfg, log)
	gatewayService := gateway.NewService(reg, upstreamClient, newMaskingPolicy(cfg), sink, newGatewayOptions(cfg), log)

	httpServer := httpserver.New(cfg, log, gatewayService, telemetry)
	app := NewApplication(httpServer, log)

	log.Info().Int("tools", reg.Size()).Str("audit_backend", cfg.AuditBackend).Msg("tool gateway ready")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

func newRegistry(cfg *config.Config, log zerolog.Logger) (*registry.Registry, error) {
	bases := registry.Bases{
		Inventory: cfg.InventoryBase,
		History:   cfg.HistoryBase,
		Pricing:   cfg.PricingBase,
	}
	if cfg.ToolRegistryFile == "" {
		return registry.New(registry.Defaults(bases))
	}
	log.Info().Str("file", cfg.ToolRegistryFile).Msg("loading tool registry from file")
	entries, err := registry.LoadFile(cfg.ToolRegistryFile, bases)
	if err != nil {
		return nil, err
	}
	return registry.New(entries)
}

func newAuditSink(ctx context.Context, cfg *config.Config, log zerolog.Logger) (gateway.AuditSink, func(), error) {
	if cfg.AuditBackend == "memory" {
		log.Warn().Msg("audit trail kept in memory; events are lost on restart")
		return auditsink.NewMemorySink(cfg.AuditMaxLen), func() {}, nil
	}

	client, err := auditsink.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			log.Error().Err(err).Msg("close redis client")
		}
	}
	return auditsink.NewRedisSink(client, cfg.AuditStreamKey, cfg.AuditMaxLen), closeFn, nil
}

func newUpstreamClient(cfg *config.Config, log zerolog.Logger) *upstream.Client {
	return upstream.NewClient(cfg.ToolTimeout, upstream.BreakerConfig{
		Enabled:          cfg.CircuitBreakerEnabled,
		FailureThreshold: cfg.CircuitBreakerFailures,
		OpenTimeout:      cfg.CircuitBreakerTimeout,
		OnStateChange:    metrics.SetCircuitBreakerState,
	}, log)
}

func newMaskingPolicy(cfg *config.Config) *masking.Policy {
	return masking.NewPolicy(cfg.SensitiveKeys...)
}

func newGatewayOptions(cfg *config.Config) gateway.Options {
	return gateway.Options{
		ResultMaxBytes: cfg.AuditResultMaxBytes,
		Observer: func(tool, upstreamName, status string, elapsed time.Duration) {
			metrics.RecordToolCall(tool, upstreamName, status, elapsed.Seconds())
		},
		OnAuditFailure: metrics.RecordAuditFailure,
	}
}
