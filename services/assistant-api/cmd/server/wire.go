//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/config"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/assist"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/filters"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/tools"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/gatewayclient"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/logger"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/handlers"
)

var storageSet = wire.NewSet(
	newStorage,
	wire.FieldsOf(new(*Storage), "Deals", "Artifacts", "Audit", "QuickQuestions", "Tx"),
)

var domainSet = wire.NewSet(
	newGatewayClient,
	wire.Bind(new(tools.Caller), new(*gatewayclient.Client)),
	newAssistOptions,
	newDealService,
	assist.NewService,
	artifact.NewService,
	quickquestion.NewService,
	filters.NewService,
)

// BuildApplication assembles the assistant with Wire. The returned cleanup
// releases storage and the JWKS refresher.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		newTelemetry,
		newValidator,
		storageSet,
		domainSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}

func newTelemetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*observability.Provider, error) {
	return observability.Init(ctx, cfg.Telemetry(), log)
}

func newValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, func(), error) {
	v, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return v, v.Close, nil
}

func newDealService(repo deal.Repository, cfg *config.Config, log zerolog.Logger) (deal.Service, error) {
	return deal.NewService(repo, cfg.DealCacheSize, log)
}
