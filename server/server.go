// Package server HTTP API ILUMINATI поверх gin.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"iluminati/internal/config"
	"iluminati/server/handlers"
	"iluminati/server/middleware"
)

// Server HTTP сервер ILUMINATI
type Server struct {
	config     *config.Config
	container  *Container
	httpServer *http.Server

	handlerOnce sync.Once
	httpHandler http.Handler
}

// NewServer создает сервер поверх собранного контейнера
func NewServer(container *Container) *Server {
	return &Server{config: container.Config, container: container}
}

// Start запускает HTTP сервер и блокируется до Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.config.Lookup.Timeout*2 + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Starting HTTP server on %s...", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server on %s: %w", addr, err)
	}
	return nil
}

// ServeHTTP реализует http.Handler для тестов
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler().ServeHTTP(w, r)
}

func (s *Server) handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})
	return s.httpHandler
}

func (s *Server) buildHTTPHandler() http.Handler {
	// GIN_MODE из окружения имеет приоритет
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := s.container.Logger
	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinSecurityHeadersMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware(logger))
	router.Use(middleware.GinRecoveryMiddleware(logger, s.container.ErrorHandler.Metrics()))

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)
	s.container.Handlers.RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{
			Error:     http.StatusText(http.StatusNotFound),
			Message:   "Neznámy endpoint",
			RequestID: middleware.GetRequestIDFromGin(c),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	return router
}

// Shutdown останавливает HTTP сервер и освобождает ресурсы контейнера
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Initiating graceful shutdown...")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
	}
	if err := s.container.Close(); err != nil {
		LogError(ctx, err, "failed to release resources")
	}

	log.Println("Graceful shutdown completed")
	return nil
}
