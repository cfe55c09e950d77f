// @title ILUMINATI API
// @version 1.0
// @description API pre vyhľadávanie firiem v obchodných registroch, hodnotenie rizika a graf vzťahov medzi firmami a osobami.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name Internal Use Only
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8090
// @BasePath /api
// @schemes http https

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iluminati/database"
	"iluminati/internal/config"
	"iluminati/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск ILUMINATI API...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	logger := server.SetupLogger(cfg.SlogLevel())

	db, err := database.NewDBWithConfig(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Ошибка создания базы данных: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := server.NewContainer(ctx, db, cfg, logger)
	if err != nil {
		log.Fatalf("Ошибка инициализации зависимостей: %v", err)
	}
	srv := server.NewServer(container)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Паника при запуске сервера: %v", r)
			}
		}()
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер успешно запущен на порту %s", cfg.Port)
	log.Printf("✓ API доступно: http://localhost:%s/api", cfg.Port)
	log.Printf("✓ Swagger: http://localhost:%s/swagger/index.html", cfg.Port)
	log.Printf("✓ База данных: %s", cfg.DatabasePath)
	log.Printf("✓ Хранилище токена: %s", cfg.TokenStore)
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")
	server.LogInfo(ctx, "server started", "port", cfg.Port, "backend", cfg.Lookup.BaseURL)

	select {
	case err := <-errCh:
		log.Printf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
	case <-ctx.Done():
		log.Println("═══════════════════════════════════════════════════════")
		log.Println("⏹  Получен сигнал завершения, останавливаю сервер...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("✗ Ошибка при остановке сервера: %v", err)
		return
	}
	log.Println("✓ Сервер успешно остановлен")
}
