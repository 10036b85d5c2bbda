// Package bootstrap wires configuration, logging, storage and the HTTP API
// into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-eventdesk/api"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/config"
	"github.com/goliatone/go-eventdesk/logging"
	"github.com/goliatone/go-eventdesk/repository"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// LoadConfig loads a .env file when present, then parses the environment
func LoadConfig(files ...string) (config.AppConfig, error) {
	if err := godotenv.Load(files...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "load .env file")
		}
	}
	return config.Parse()
}

// NewLogger builds the process logger from the log configuration
func NewLogger(cfg config.AppConfig) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Debug)
}

// OpenDB opens the sqlite database named by the DSN
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "open database")
	}
	if isMemoryDSN(dsn) {
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Migrate creates any missing tables and indexes
func Migrate(ctx context.Context, db *bun.DB) error {
	if err := repository.CreateSchema(ctx, db); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "create schema")
	}
	return nil
}

// App is the wired application
type App struct {
	Config config.AppConfig
	Logger *zap.Logger
	DB     *bun.DB
	Repos  repository.Manager
	Auther *auth.Auther
	HTTP   *fiber.App
}

// NewAuther builds the auth facade over the users repository, with
// activity logged through logger.
func NewAuther(cfg config.AppConfig, repos repository.Manager, logger *zap.Logger) (*auth.Auther, error) {
	return auth.NewAuther(repos.Users(), cfg.Auth,
		auth.WithLogger(logging.NewLogger(logger).Named("auth")),
		auth.WithActivitySink(logging.ActivitySink(logger)),
	)
}

// Build wires every component on top of an open database. The schema is
// created when missing.
func Build(ctx context.Context, cfg config.AppConfig, logger *zap.Logger, db *bun.DB) (*App, error) {
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}

	repos := repository.NewRepositoryManager(db)
	if err := repos.Validate(); err != nil {
		return nil, err
	}

	auther, err := NewAuther(cfg, repos, logger)
	if err != nil {
		return nil, err
	}

	httpApp, err := api.New(api.Config{
		Auther:         auther,
		Repos:          repos,
		Logger:         logger.Named("http"),
		Debug:          cfg.Debug,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Repos:  repos,
		Auther: auther,
		HTTP:   httpApp,
	}, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.DB.Close()
}
