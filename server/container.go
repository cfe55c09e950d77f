package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"golang.org/x/time/rate"

	"iluminati/company"
	"iluminati/database"
	"iluminati/export"
	"iluminati/internal/config"
	"iluminati/lookup"
	"iluminati/server/handlers"
	"iluminati/server/middleware"
)

// Container контейнер зависимостей сервера
type Container struct {
	Config *config.Config
	DB     *database.DB
	Logger *slog.Logger

	Tokens lookup.TokenStore
	Cache  *lookup.Cache
	Client *lookup.Client

	Normalizer   *company.Normalizer
	Exporter     *export.Exporter
	ErrorHandler *middleware.ErrorHandler
	Handlers     *handlers.Handlers

	closers []func() error
}

// NewContainer собирает зависимости в порядке: хранилище токена, клиент поиска, обработчики
func NewContainer(ctx context.Context, db *database.DB, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:     cfg,
		DB:         db,
		Logger:     logger,
		Normalizer: company.NewNormalizer(),
		Exporter:   export.NewExporter(),
	}

	log.Printf("Инициализация хранилища токена (%s)...", cfg.TokenStore)
	if err := c.InitTokenStore(ctx); err != nil {
		return nil, fmt.Errorf("failed to init token store: %w", err)
	}

	c.InitLookup()
	log.Printf("✓ Клиент реестров: %s", cfg.Lookup.BaseURL)

	c.InitHandlers()
	return c, nil
}

// InitTokenStore выбирает хранилище токена по TOKEN_STORE
func (c *Container) InitTokenStore(ctx context.Context) error {
	switch c.Config.TokenStore {
	case config.TokenStoreSQLite:
		c.Tokens = c.DB.Tokens()
	case config.TokenStoreRedis:
		store, err := lookup.NewRedisTokenStore(ctx, lookup.RedisTokenStoreConfig{
			Addr: c.Config.RedisAddr,
			Key:  c.Config.RedisKey,
		})
		if err != nil {
			return err
		}
		c.Tokens = store
		c.closers = append(c.closers, store.Close)
	default:
		c.Tokens = lookup.NewMemoryTokenStore()
	}
	return nil
}

// InitLookup создает кэш и клиент поиска
func (c *Container) InitLookup() {
	lc := c.Config.Lookup

	if lc.CacheEnabled {
		c.Cache = lookup.NewCache(lookup.CacheConfig{
			Enabled:         true,
			TTL:             lc.CacheTTL,
			CleanupInterval: lc.CacheTTL,
			MaxSize:         1000,
		})
		c.closers = append(c.closers, func() error {
			c.Cache.Close()
			return nil
		})
	}

	limit := rate.Inf
	if lc.RateLimitPerSec > 0 {
		limit = rate.Limit(lc.RateLimitPerSec)
	}

	c.Client = lookup.NewClient(lookup.ClientConfig{
		BaseURL:   lc.BaseURL,
		Timeout:   lc.Timeout,
		RateLimit: limit,
		Burst:     1,
		Limit:     lc.Limit,
		Cache:     c.Cache,
		Tokens:    c.Tokens,
		Credentials: lookup.Credentials{
			Username: lc.Username,
			Password: lc.Password,
		},
		Logger:     c.Logger,
		Normalizer: c.Normalizer,
	})
}

// InitHandlers создает обработчики API
func (c *Container) InitHandlers() {
	c.ErrorHandler = middleware.NewErrorHandler(c.Logger, nil)
	c.Handlers = NewHandlers(c.Logger, c.ErrorHandler, c.Client, c.DB, c.Normalizer, c.Exporter)
}

// NewHandlers связывает обработчики с зависимостями; searcher подменяется в тестах
func NewHandlers(
	logger *slog.Logger,
	errorHandler *middleware.ErrorHandler,
	searcher handlers.Searcher,
	db *database.DB,
	normalizer *company.Normalizer,
	exporter *export.Exporter,
) *handlers.Handlers {
	base := handlers.NewBaseHandler(logger, errorHandler)
	return &handlers.Handlers{
		Search:  handlers.NewSearchHandler(base, searcher, db),
		Company: handlers.NewCompanyHandler(base, searcher),
		Graph:   handlers.NewGraphHandler(base, normalizer, db),
		Export:  handlers.NewExportHandler(base, exporter),
		Import:  handlers.NewImportHandler(base, db),
		System:  handlers.NewSystemHandler(base, db, searcher),
	}
}

// Close освобождает кэш и соединение с Redis; базу закрывает владелец
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
