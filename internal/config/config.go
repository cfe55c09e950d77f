package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Хранилища токена доступа к бэкенду реестров
const (
	TokenStoreMemory = "memory"
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
)

// Config конфигурация ILUMINATI
type Config struct {
	// Сервер
	Port     string `json:"port"`
	LogLevel string `json:"log_level"`

	// База данных
	DatabasePath    string        `json:"database_path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Бэкенд реестров
	Lookup *LookupConfig `json:"lookup"`

	// Токен доступа
	TokenStore string `json:"token_store"`
	RedisAddr  string `json:"redis_addr"`
	RedisKey   string `json:"redis_key"`
}

// LookupConfig конфигурация клиента поиска
type LookupConfig struct {
	BaseURL         string        `json:"base_url"`
	Timeout         time.Duration `json:"timeout"`
	RateLimitPerSec float64       `json:"rate_limit_per_sec"`
	Limit           int           `json:"limit"`
	CacheEnabled    bool          `json:"cache_enabled"`
	CacheTTL        time.Duration `json:"cache_ttl"`
	Username        string        `json:"username"`
	Password        string        `json:"-"`
}

// LoadConfig загружает конфигурацию из переменных окружения и проверяет ее
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:     getEnv("SERVER_PORT", "8090"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DatabasePath:    getEnv("DATABASE_PATH", "iluminati.db"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 3),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		Lookup: LoadLookupConfig(),

		TokenStore: strings.ToLower(getEnv("TOKEN_STORE", TokenStoreMemory)),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisKey:   getEnv("REDIS_KEY", "iluminati:access_token"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// LoadLookupConfig загружает настройки клиента бэкенда реестров
func LoadLookupConfig() *LookupConfig {
	return &LookupConfig{
		BaseURL:         strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		Timeout:         getEnvDuration("API_TIMEOUT", 15*time.Second),
		RateLimitPerSec: getEnvFloat("API_RATE_LIMIT_PER_SEC", 5),
		Limit:           getEnvInt("SEARCH_LIMIT", 10),
		CacheEnabled:    getEnvBool("SEARCH_CACHE_ENABLED", true),
		CacheTTL:        getEnvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		Username:        getEnv("DEMO_USERNAME", "test_automation@example.com"),
		Password:        getEnv("DEMO_PASSWORD", "TestPassword123!"),
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool понимает true/false, 1/0, yes/no
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
