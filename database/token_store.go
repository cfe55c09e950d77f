package database

import (
	"context"
	"database/sql"
	"fmt"
)

const defaultTokenName = "demo"

// TokenStore хранит bearer-токен демо-пользователя между перезапусками
type TokenStore struct {
	db   *DB
	name string
}

// Tokens возвращает хранилище токенов поверх базы
func (db *DB) Tokens() *TokenStore {
	return &TokenStore{db: db, name: defaultTokenName}
}

// Get возвращает сохраненный токен или пустую строку
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	var token string
	err := s.db.conn.QueryRowContext(ctx, `SELECT token FROM auth_tokens WHERE name = ?`, s.name).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// Set сохраняет токен, заменяя предыдущий
func (s *TokenStore) Set(ctx context.Context, token string) error {
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO auth_tokens (name, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		s.name, token, s.db.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear удаляет токен
func (s *TokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM auth_tokens WHERE name = ?`, s.name); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
