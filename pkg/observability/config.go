package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/dealermate/dealermate-server/pkg/masking"
)

// Config carries the telemetry settings each service maps from its env config.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TracingEnabled bool
	MetricsEnabled bool
	OTLPEndpoint   string
	OTLPHeaders    map[string]string
	// SamplingRate is the parent based trace ratio, 0.0 to 1.0.
	SamplingRate float64
	// PIILevel decides how dealer messages appear on spans.
	PIILevel masking.PIILevel

	TraceBatchTimeout time.Duration
	MetricInterval    time.Duration
}

// DefaultConfig returns the settings used unless a service overrides them.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "unknown",
		Environment:       "development",
		OTLPEndpoint:      "otel-collector:4318",
		SamplingRate:      1.0,
		PIILevel:          masking.PIILevelHashed,
		TraceBatchTimeout: 5 * time.Second,
		MetricInterval:    15 * time.Second,
	}
}

func (c Config) enabled() bool {
	return c.TracingEnabled || c.MetricsEnabled
}

func (c Config) validate() error {
	if !c.enabled() {
		return nil
	}
	if c.OTLPEndpoint == "" {
		return errors.New("OTLP endpoint is required when telemetry is enabled")
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return fmt.Errorf("sampling rate %.2f outside 0..1", c.SamplingRate)
	}
	return nil
}
