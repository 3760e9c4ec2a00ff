package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dealermate/dealermate-server/pkg/observability"
)

// Config holds the environment driven configuration for the tool gateway.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"tool-gateway"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"` // json or console
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	EnableTracing bool    `env:"OTEL_ENABLED" envDefault:"false"`
	EnableMetrics bool    `env:"OTEL_METRICS_ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	SamplingRate  float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`

	// Upstream tool providers
	InventoryBase    string        `env:"INVENTORY_BASE" envDefault:"http://mcp-inventory:8000"`
	HistoryBase      string        `env:"HISTORY_BASE" envDefault:"http://mcp-history:8000"`
	PricingBase      string        `env:"PRICING_BASE" envDefault:"http://mcp-pricing:8000"`
	ToolRegistryFile string        `env:"TOOL_REGISTRY_FILE"`
	ToolTimeout      time.Duration `env:"TOOL_TIMEOUT" envDefault:"15s"`

	// Audit trail
	AuditBackend        string `env:"AUDIT_BACKEND" envDefault:"redis"` // redis or memory
	RedisURL            string `env:"REDIS_URL" envDefault:"redis://redis:6379/0"`
	AuditStreamKey      string `env:"AUDIT_STREAM_KEY" envDefault:"mcp:audit"`
	AuditMaxLen         int64  `env:"AUDIT_MAX_LEN" envDefault:"5000"`
	AuditResultMaxBytes int    `env:"AUDIT_RESULT_MAX_BYTES" envDefault:"2000"`

	// Circuit breaker per upstream base
	CircuitBreakerEnabled  bool          `env:"CIRCUIT_BREAKER_ENABLED" envDefault:"false"`
	CircuitBreakerFailures uint32        `env:"CIRCUIT_BREAKER_FAILURES" envDefault:"15"`
	CircuitBreakerTimeout  time.Duration `env:"CIRCUIT_BREAKER_TIMEOUT" envDefault:"45s"`

	SensitiveKeys []string `env:"MASK_SENSITIVE_KEYS" envSeparator:","`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.AuditBackend)) {
	case "redis":
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return nil, fmt.Errorf("REDIS_URL is required when AUDIT_BACKEND is redis")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("AUDIT_BACKEND must be redis or memory, got %q", cfg.AuditBackend)
	}
	cfg.AuditBackend = strings.ToLower(strings.TrimSpace(cfg.AuditBackend))

	if cfg.ToolTimeout <= 0 {
		return nil, fmt.Errorf("TOOL_TIMEOUT must be positive")
	}
	if cfg.AuditMaxLen <= 0 {
		return nil, fmt.Errorf("AUDIT_MAX_LEN must be positive")
	}
	if cfg.AuditResultMaxBytes <= 0 {
		return nil, fmt.Errorf("AUDIT_RESULT_MAX_BYTES must be positive")
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Telemetry maps the env settings onto the shared observability config.
func (c *Config) Telemetry() observability.Config {
	tc := observability.DefaultConfig(c.ServiceName)
	tc.Environment = c.Environment
	tc.TracingEnabled = c.EnableTracing
	tc.MetricsEnabled = c.EnableMetrics
	tc.OTLPEndpoint = c.OTLPEndpoint
	tc.SamplingRate = c.SamplingRate
	return tc
}
