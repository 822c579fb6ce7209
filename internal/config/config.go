package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort         string
	AppMode          string
	FiberPrefork     bool
	CORSAllowOrigins string

	// ServiceAccountKey is the Base64 encoded service account JSON.
	ServiceAccountKey string
	PropertyID        string
	GA4RequestTimeout time.Duration

	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	WorkerBufferSize int
	WorkerBatchSize  int
	WorkerFlushEvery time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	port, err := parsePort(getEnv("PORT", "10000"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:           port,
		AppMode:            strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:       parseBoolEnv("FIBER_PREFORK", false),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
		ServiceAccountKey:  firstEnv("GA4_SERVICE_ACCOUNT_KEY", "GA4_KEY_BASE64"),
		PropertyID:         getEnv("GA4_PROPERTY_ID", "515522755"),
		GA4RequestTimeout:  parseDurationEnv("GA4_REQUEST_TIMEOUT", 0),
		ClickHouseAddr:     os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "default"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
		WorkerBufferSize:   parseIntEnv("WORKER_BUFFER_SIZE", 256),
		WorkerBatchSize:    parseIntEnv("WORKER_BATCH_SIZE", 50),
		WorkerFlushEvery:   parseDurationEnv("WORKER_FLUSH_EVERY", 5*time.Second),
	}

	if strings.HasPrefix(cfg.PropertyID, "properties/") {
		cfg.PropertyID = strings.TrimPrefix(cfg.PropertyID, "properties/")
	}
	if cfg.PropertyID == "" {
		return nil, fmt.Errorf("GA4_PROPERTY_ID must not be empty")
	}
	if cfg.WorkerBatchSize <= 0 || cfg.WorkerBufferSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE and WORKER_BUFFER_SIZE must be positive")
	}
	if cfg.WorkerFlushEvery <= 0 {
		return nil, fmt.Errorf("WORKER_FLUSH_EVERY must be positive")
	}
	return cfg, nil
}

// ArchiveEnabled reports whether summaries are archived to ClickHouse.
func (c *Config) ArchiveEnabled() bool {
	return c.ClickHouseAddr != ""
}

func parsePort(raw string) (string, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), ":")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return ":" + raw, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
