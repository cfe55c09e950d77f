package lookup

import (
	"context"
	"sync"
)

// TokenStore хранилище bearer-токена демо-аутентификации
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore токен в памяти процесса
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore создает пустое хранилище
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Get возвращает сохраненный токен или пустую строку
func (s *MemoryTokenStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set сохраняет токен
func (s *MemoryTokenStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear удаляет токен
func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}
