package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAuthKeyMaterial(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_JWKS_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://tool-gateway:8000", cfg.ToolGatewayURL)
	assert.Equal(t, 20*time.Second, cfg.ToolGatewayTimeout)
	assert.Equal(t, "dealermate", cfg.AuthIssuer)
	assert.Equal(t, "dealermate-web", cfg.AuthAudience)
	assert.False(t, cfg.AssistParallelHistory)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoadTrimsGatewayURL(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("TOOL_GATEWAY_URL", "http://localhost:8000/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ToolGatewayURL)
}

func TestLoadRejectsBadCacheSize(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("DEAL_CACHE_SIZE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "DEAL_CACHE_SIZE")
}

func TestLoadPIILevel(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")

	t.Setenv("OTEL_PII_LEVEL", "none")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "none", string(cfg.Telemetry().PIILevel))

	t.Setenv("OTEL_PII_LEVEL", "partial")
	_, err = Load()
	assert.ErrorContains(t, err, "OTEL_PII_LEVEL")
}
