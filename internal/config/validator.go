package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var validLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// Validate проверяет конфигурацию и собирает все найденные проблемы
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	if c.LogLevel != "" {
		if _, ok := parseLogLevel(c.LogLevel); !ok {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	switch c.TokenStore {
	case TokenStoreMemory, TokenStoreSQLite:
	case TokenStoreRedis:
		if c.RedisAddr == "" {
			errors = append(errors, "redis address is required when token store is redis")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid token store: %s (valid: memory, sqlite, redis)", c.TokenStore))
	}

	if c.Lookup == nil {
		errors = append(errors, "lookup config is required")
	} else if err := c.Lookup.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("lookup config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate проверяет настройки клиента поиска
func (lc *LookupConfig) Validate() error {
	var errors []string

	if lc.BaseURL == "" {
		errors = append(errors, "base url is required")
	} else if u, err := url.Parse(lc.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid base url: %s", lc.BaseURL))
	}
	if lc.Timeout < time.Second {
		errors = append(errors, "timeout must be at least 1 second")
	}
	if lc.RateLimitPerSec < 0 {
		errors = append(errors, "rate limit must not be negative")
	}
	if lc.Limit < 1 || lc.Limit > 100 {
		errors = append(errors, fmt.Sprintf("search limit must be between 1 and 100, got %d", lc.Limit))
	}
	if lc.CacheEnabled && lc.CacheTTL < time.Second {
		errors = append(errors, "cache TTL must be at least 1 second")
	}
	if lc.Username == "" || lc.Password == "" {
		errors = append(errors, "demo credentials are required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// SlogLevel возвращает уровень логирования; пустой или неизвестный уровень дает INFO
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:            "8090",
		LogLevel:        "INFO",
		DatabasePath:    "iluminati.db",
		MaxOpenConns:    10,
		MaxIdleConns:    3,
		ConnMaxLifetime: 5 * time.Minute,
		Lookup: &LookupConfig{
			BaseURL:         "http://localhost:8000",
			Timeout:         15 * time.Second,
			RateLimitPerSec: 5,
			Limit:           10,
			CacheEnabled:    true,
			CacheTTL:        10 * time.Minute,
			Username:        "test_automation@example.com",
			Password:        "TestPassword123!",
		},
		TokenStore: TokenStoreMemory,
		RedisKey:   "iluminati:access_token",
	}
}
