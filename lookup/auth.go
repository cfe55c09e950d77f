package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials учетные данные демо-пользователя
type Credentials struct {
	Username string
	Password string
	FullName string
}

// DefaultCredentials демо-пара, под которой фронтенд ходит в бэкенд
var DefaultCredentials = Credentials{
	Username: "test_automation@example.com",
	Password: "TestPassword123!",
	FullName: "Frontend Automation User",
}

// TokenValid проверяет, что exp в JWT лежит в будущем. Подпись не проверяется:
// токен выдан бэкендом и им же будет проверен.
func TokenValid(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.After(now)
}

// authToken возвращает действующий токен или пустую строку.
// Любая ошибка аутентификации приводит к запросу без токена.
func (c *Client) authToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.Warn("token store read failed", "error", err)
	} else if TokenValid(token, c.now()) {
		return token
	} else if token != "" {
		c.logger.Warn("cached token is invalid or expired, re-authenticating")
	}

	c.logger.Info("authenticating as demo user", "username", c.credentials.Username)

	// Регистрация может вернуть "уже зарегистрирован" - это нормально
	if err := c.register(ctx); err != nil {
		c.logger.Debug("demo register skipped", "error", err)
	}

	token, err = c.login(ctx)
	if err != nil {
		c.logger.Error("demo auth failed", "error", err)
		return ""
	}
	if err := c.tokens.Set(ctx, token); err != nil {
		c.logger.Warn("token store write failed", "error", err)
	}
	return token
}

func (c *Client) register(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"email":     c.credentials.Username,
		"password":  c.credentials.Password,
		"full_name": c.credentials.FullName,
	})
	if err != nil {
		return fmt.Errorf("failed to encode register body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("register: unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("username", c.credentials.Username)
	form.Set("password", c.credentials.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: unexpected status code: %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("login: failed to decode response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token")
	}
	return payload.AccessToken, nil
}
