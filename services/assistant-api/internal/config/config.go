package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dealermate/dealermate-server/pkg/masking"
	"github.com/dealermate/dealermate-server/pkg/observability"
)

// Config holds the environment driven configuration for the assistant API.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"assistant-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"` // json or console
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	EnableTracing bool    `env:"OTEL_ENABLED" envDefault:"false"`
	EnableMetrics bool    `env:"OTEL_METRICS_ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	SamplingRate  float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
	PIILevel      string  `env:"OTEL_PII_LEVEL" envDefault:"hashed"` // none, hashed or full

	// Empty DATABASE_URL keeps every record in process memory.
	DatabaseURL    string        `env:"DATABASE_URL"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	AuthEnabled   bool   `env:"AUTH_ENABLED" envDefault:"true"`
	AuthIssuer    string `env:"AUTH_ISSUER" envDefault:"dealermate"`
	AuthAudience  string `env:"AUTH_AUDIENCE" envDefault:"dealermate-web"`
	AuthJWKSURL   string `env:"AUTH_JWKS_URL"`
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	ToolGatewayURL     string        `env:"TOOL_GATEWAY_URL" envDefault:"http://tool-gateway:8000"`
	ToolGatewayTimeout time.Duration `env:"TOOL_GATEWAY_TIMEOUT" envDefault:"20s"`

	AssistParallelHistory bool `env:"ASSIST_PARALLEL_HISTORY" envDefault:"false"`
	DealCacheSize         int  `env:"DEAL_CACHE_SIZE" envDefault:"1024"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.AuthEnabled && strings.TrimSpace(cfg.AuthJWKSURL) == "" && strings.TrimSpace(cfg.AuthJWTSecret) == "" {
		return nil, fmt.Errorf("AUTH_JWKS_URL or AUTH_JWT_SECRET is required when AUTH_ENABLED is true")
	}
	if strings.TrimSpace(cfg.ToolGatewayURL) == "" {
		return nil, fmt.Errorf("TOOL_GATEWAY_URL is required")
	}
	cfg.ToolGatewayURL = strings.TrimRight(cfg.ToolGatewayURL, "/")
	if cfg.ToolGatewayTimeout <= 0 {
		return nil, fmt.Errorf("TOOL_GATEWAY_TIMEOUT must be positive")
	}
	switch masking.PIILevel(cfg.PIILevel) {
	case masking.PIILevelNone, masking.PIILevelHashed, masking.PIILevelFull:
	default:
		return nil, fmt.Errorf("OTEL_PII_LEVEL must be none, hashed or full")
	}
	if cfg.DealCacheSize <= 0 {
		return nil, fmt.Errorf("DEAL_CACHE_SIZE must be positive")
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UsesDatabase reports whether a PostgreSQL DSN was configured.
func (c *Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// Telemetry maps the env settings onto the shared observability config.
func (c *Config) Telemetry() observability.Config {
	tc := observability.DefaultConfig(c.ServiceName)
	tc.Environment = c.Environment
	tc.TracingEnabled = c.EnableTracing
	tc.MetricsEnabled = c.EnableMetrics
	tc.OTLPEndpoint = c.OTLPEndpoint
	tc.SamplingRate = c.SamplingRate
	tc.PIILevel = masking.PIILevel(c.PIILevel)
	return tc
}
