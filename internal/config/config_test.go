package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_MODE", "FIBER_PREFORK", "CORS_ALLOW_ORIGINS",
	"GA4_SERVICE_ACCOUNT_KEY", "GA4_KEY_BASE64", "GA4_PROPERTY_ID", "GA4_REQUEST_TIMEOUT",
	"CLICKHOUSE_ADDR", "CLICKHOUSE_DATABASE", "CLICKHOUSE_USERNAME", "CLICKHOUSE_PASSWORD",
	"WORKER_BUFFER_SIZE", "WORKER_BATCH_SIZE", "WORKER_FLUSH_EVERY",
}

func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":10000", cfg.HTTPPort)
	require.Equal(t, "dev", cfg.AppMode)
	require.False(t, cfg.FiberPrefork)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
	require.Empty(t, cfg.ServiceAccountKey)
	require.Equal(t, "515522755", cfg.PropertyID)
	require.Zero(t, cfg.GA4RequestTimeout)
	require.False(t, cfg.ArchiveEnabled())
	require.Equal(t, 256, cfg.WorkerBufferSize)
	require.Equal(t, 50, cfg.WorkerBatchSize)
	require.Equal(t, 5*time.Second, cfg.WorkerFlushEvery)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_MODE", "PROD")
	t.Setenv("GA4_KEY_BASE64", "a2V5")
	t.Setenv("GA4_PROPERTY_ID", "properties/42")
	t.Setenv("GA4_REQUEST_TIMEOUT", "15s")
	t.Setenv("CLICKHOUSE_ADDR", "localhost:9000")
	t.Setenv("WORKER_BATCH_SIZE", "7")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPPort)
	require.Equal(t, "prod", cfg.AppMode)
	require.Equal(t, "a2V5", cfg.ServiceAccountKey)
	require.Equal(t, "42", cfg.PropertyID)
	require.Equal(t, 15*time.Second, cfg.GA4RequestTimeout)
	require.True(t, cfg.ArchiveEnabled())
	require.Equal(t, 7, cfg.WorkerBatchSize)
}

func TestLoad_ServiceAccountKeyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("GA4_SERVICE_ACCOUNT_KEY", "primary")
	t.Setenv("GA4_KEY_BASE64", "secondary")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.ServiceAccountKey)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidWorkerSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_BATCH_SIZE", "-1")

	_, err := Load()
	require.Error(t, err)
}
