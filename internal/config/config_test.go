package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_PORT", "LOG_LEVEL", "DATABASE_PATH", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"DB_CONN_MAX_LIFETIME", "API_BASE_URL", "API_TIMEOUT", "API_RATE_LIMIT_PER_SEC",
	"SEARCH_LIMIT", "SEARCH_CACHE_ENABLED", "SEARCH_CACHE_TTL", "DEMO_USERNAME",
	"DEMO_PASSWORD", "TOKEN_STORE", "REDIS_ADDR", "REDIS_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "iluminati.db", cfg.DatabasePath)
	assert.Equal(t, TokenStoreMemory, cfg.TokenStore)
	assert.Equal(t, "http://localhost:8000", cfg.Lookup.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 10, cfg.Lookup.Limit)
	assert.True(t, cfg.Lookup.CacheEnabled)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_BASE_URL", "http://registry.local:8000/")
	t.Setenv("API_TIMEOUT", "30s")
	t.Setenv("API_RATE_LIMIT_PER_SEC", "2.5")
	t.Setenv("SEARCH_CACHE_ENABLED", "no")
	t.Setenv("TOKEN_STORE", "SQLite")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "http://registry.local:8000", cfg.Lookup.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 2.5, cfg.Lookup.RateLimitPerSec)
	assert.False(t, cfg.Lookup.CacheEnabled)
	assert.Equal(t, TokenStoreSQLite, cfg.TokenStore)
	assert.Equal(t, 10, cfg.MaxOpenConns)
}

func TestLoadConfig_RedisRequiresAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_STORE", "redis")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis address")
}

func TestConfigLogLevelValidation(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantError bool
	}{
		{"Valid DEBUG", "DEBUG", false},
		{"Valid INFO", "INFO", false},
		{"Valid WARN", "WARN", false},
		{"Valid ERROR", "ERROR", false},
		{"Valid lowercase debug", "debug", false},
		{"Invalid value", "INVALID", true},
		{"Empty string", "", false},
		{"Mixed case", "DeBuG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			cfg.LogLevel = tt.logLevel

			err := cfg.Validate()
			assert.Equal(t, tt.wantError, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := GetDefaults()
	cfg.Port = "70000"
	cfg.MaxIdleConns = 50
	cfg.TokenStore = "etcd"
	cfg.Lookup.BaseURL = "registry"
	cfg.Lookup.Limit = 0

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"port must be between", "max idle connections", "invalid token store", "invalid base url", "search limit"} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestValidate_MissingLookup(t *testing.T) {
	cfg := GetDefaults()
	cfg.Lookup = nil
	assert.Error(t, cfg.Validate())
}

func TestGetDefaultsAreValid(t *testing.T) {
	assert.NoError(t, GetDefaults().Validate())
}
