// Command iluminati консольный клиент: поиск компаний, карточка по IČO, экспорт и импорт графа.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"iluminati/database"
	"iluminati/internal/config"
	"iluminati/server"
)

// options глобальные флаги
type options struct {
	apiURL  string
	dbPath  string
	timeout time.Duration
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd собирает дерево команд; каждый вызов дает независимые флаги
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "iluminati",
		Short: "ILUMINATI - vyhľadávanie firiem a vzťahov v obchodných registroch",
		Long: `ILUMINATI hľadá firmy v obchodných registroch strednej Európy,
vypočíta orientačné rizikové skóre a zostaví graf vzťahov
medzi firmami, osobami a adresami.

Príklady:
  iluminati search "Tatra banka" --country SK,CZ
  iluminati company 31320155 --country SK
  iluminati export "Tatra banka" --format xlsx --out tatra.xlsx
  iluminati import firmy.csv --store`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "URL backendu (prepíše API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "cesta k SQLite databáze (prepíše DATABASE_PATH)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "časový limit príkazu")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "podrobné logy")

	root.AddCommand(
		newSearchCmd(opts),
		newCompanyCmd(opts),
		newHistoryCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return root
}

// load загружает конфигурацию из окружения и применяет флаги
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if o.apiURL != "" {
		cfg.Lookup.BaseURL = o.apiURL
	}
	if o.dbPath != "" {
		cfg.DatabasePath = o.dbPath
	}
	if o.timeout > 0 {
		cfg.Lookup.Timeout = o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	o.cfg = cfg
	o.logger = server.NewLogger(cmd.ErrOrStderr(), level)
	return nil
}

// openDB открывает базу из конфигурации
func (o *options) openDB() (*database.DB, error) {
	db, err := database.NewDBWithConfig(o.cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    o.cfg.MaxOpenConns,
		MaxIdleConns:    o.cfg.MaxIdleConns,
		ConnMaxLifetime: o.cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", o.cfg.DatabasePath, err)
	}
	return db, nil
}

// app зависимости одной команды
type app struct {
	db        *database.DB
	container *server.Container
}

// newApp открывает базу и собирает клиент поиска так же, как сервер
func (o *options) newApp(ctx context.Context) (*app, error) {
	db, err := o.openDB()
	if err != nil {
		return nil, err
	}
	container, err := server.NewContainer(ctx, db, o.cfg, o.logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &app{db: db, container: container}, nil
}

// Close освобождает контейнер и базу
func (a *app) Close() error {
	err := a.container.Close()
	if dbErr := a.db.Close(); err == nil {
		err = dbErr
	}
	return err
}

// commandContext возвращает контекст команды с таймаутом, если он задан
func (o *options) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}
