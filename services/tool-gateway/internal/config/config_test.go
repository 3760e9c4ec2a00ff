package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.ToolTimeout)
	assert.Equal(t, "mcp:audit", cfg.AuditStreamKey)
	assert.Equal(t, int64(5000), cfg.AuditMaxLen)
	assert.Equal(t, 2000, cfg.AuditResultMaxBytes)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoadRejectsUnknownAuditBackend(t *testing.T) {
	t.Setenv("AUDIT_BACKEND", "kafka")

	_, err := Load()
	assert.ErrorContains(t, err, "AUDIT_BACKEND")
}

func TestLoadNormalizesBackend(t *testing.T) {
	t.Setenv("AUDIT_BACKEND", " Memory ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.AuditBackend)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("TOOL_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}
