package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/observability"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/config"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/assist"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/auditlog"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/filters"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/intent"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/artifactrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/auditrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/dealrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/repository/quickquestionrepo"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/database/transaction"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/gatewayclient"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/inmemory"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/logger"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/metrics"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/handlers"
)

// @title Dealer Assistant API
// @version 1.0
// @description Intent driven dealer assistant over the tool gateway
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	validator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth")
	}
	defer validator.Close()

	store, closeStore, err := newStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}
	defer closeStore()

	dealService, err := deal.NewService(store.Deals, cfg.DealCacheSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize deal service")
	}

	caller := newGatewayClient(cfg, log)
	assistService := assist.NewService(caller, dealService, store.Artifacts, store.Audit, store.Tx, newAssistOptions(cfg, telemetry), log)

	handlerProvider := handlers.NewProvider(
		assistService,
		dealService,
		artifact.NewService(store.Artifacts, dealService),
		quickquestion.NewService(store.QuickQuestions, log),
		filters.NewService(caller, log),
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, validator, telemetry)
	app := NewApplication(httpServer, log)

	log.Info().
		Bool("database", cfg.UsesDatabase()).
		Bool("auth", validator.Enabled()).
		Str("tool_gateway", cfg.ToolGatewayURL).
		Msg("assistant api ready")

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

// Storage groups the repositories behind one backend.
type Storage struct {
	Deals          deal.Repository
	Artifacts      artifact.Repository
	Audit          auditlog.Repository
	QuickQuestions quickquestion.Repository
	Tx             assist.Transactor
}

// newStorage connects PostgreSQL and applies migrations when DATABASE_URL is
// set, and otherwise keeps records in process memory.
func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, func(), error) {
	if !cfg.UsesDatabase() {
		log.Warn().Msg("DATABASE_URL not set; deals and audit rows are lost on restart")
		store := inmemory.NewStore()
		return &Storage{
			Deals:          inmemory.NewDealRepository(store),
			Artifacts:      inmemory.NewArtifactRepository(store),
			Audit:          inmemory.NewAuditRepository(store),
			QuickQuestions: inmemory.NewQuickQuestionRepository(store),
			Tx:             inmemory.NewTransactor(store),
		}, func() {}, nil
	}

	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}

	if err := database.Migrate(ctx, db, log); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	txDB := transaction.NewDatabase(db)
	return &Storage{
		Deals:          dealrepo.NewDealGormRepository(txDB),
		Artifacts:      artifactrepo.NewArtifactGormRepository(txDB),
		Audit:          auditrepo.NewAuditGormRepository(txDB),
		QuickQuestions: quickquestionrepo.NewQuickQuestionGormRepository(txDB),
		Tx:             txDB,
	}, closeFn, nil
}

func newGatewayClient(cfg *config.Config, log zerolog.Logger) *gatewayclient.Client {
	return gatewayclient.New(cfg.ToolGatewayURL, cfg.ToolGatewayTimeout, log)
}

func newAssistOptions(cfg *config.Config, telemetry *observability.Provider) assist.Options {
	return assist.Options{
		ParallelHistory: cfg.AssistParallelHistory,
		Scrubber:        telemetry.Scrubber,
		Observer: func(i intent.Intent, outcome string, elapsed time.Duration) {
			metrics.RecordAssist(string(i), outcome, elapsed.Seconds())
		},
	}
}
