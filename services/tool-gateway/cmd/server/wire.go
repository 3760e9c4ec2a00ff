//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/config"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/logger"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/infrastructure/upstream"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver"
)

var gatewaySet = wire.NewSet(
	newRegistry,
	newUpstreamClient,
	wire.Bind(new(gateway.Upstream), new(*upstream.Client)),
	newMaskingPolicy,
	newGatewayOptions,
	gateway.NewService,
)

// BuildApplication assembles the gateway with Wire. The returned cleanup
// closes the audit sink.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		newTelemetry,
		newAuditSink,
		gatewaySet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}

func newTelemetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*observability.Provider, error) {
	return observability.Init(ctx, cfg.Telemetry(), log)
}
