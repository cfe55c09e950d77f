package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey ключ токена по умолчанию
const DefaultRedisKey = "iluminati:access_token"

// RedisTokenStore общий для нескольких реплик токен в Redis
type RedisTokenStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// RedisTokenStoreConfig конфигурация хранилища
type RedisTokenStoreConfig struct {
	Addr string
	Key  string
	// TTL ограничивает жизнь ключа; 0 - без ограничения, срок все равно проверяется по exp
	TTL time.Duration
}

// NewRedisTokenStore подключается к Redis и проверяет соединение
func NewRedisTokenStore(ctx context.Context, config RedisTokenStoreConfig) (*RedisTokenStore, error) {
	if config.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if config.Key == "" {
		config.Key = DefaultRedisKey
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        config.Addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisTokenStoreWithClient(rdb, config.Key, config.TTL), nil
}

// NewRedisTokenStoreWithClient использует уже созданный клиент
func NewRedisTokenStoreWithClient(rdb *redis.Client, key string, ttl time.Duration) *RedisTokenStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisTokenStore{rdb: rdb, key: key, ttl: ttl}
}

// Get возвращает токен; отсутствие ключа не считается ошибкой
func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return token, nil
}

// Set сохраняет токен
func (s *RedisTokenStore) Set(ctx context.Context, token string) error {
	if err := s.rdb.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear удаляет токен
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

// Close закрывает соединение
func (s *RedisTokenStore) Close() error {
	return s.rdb.Close()
}
