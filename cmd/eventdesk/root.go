package main

import (
	"context"

	"github.com/goliatone/go-eventdesk/config"
	"github.com/goliatone/go-eventdesk/internal/bootstrap"
	"github.com/goliatone/go-eventdesk/logging"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "eventdesk",
		Short:         "Events CRUD API with token authentication",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load before reading the environment")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newUsersCmd(opts))
	return cmd
}

// runtime is what every subcommand needs before doing its work
type runtime struct {
	cfg    config.AppConfig
	logger *zap.Logger
	db     *bun.DB
}

func (o *rootOptions) setup(ctx context.Context) (*runtime, error) {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}

	cfg, err := bootstrap.LoadConfig(files...)
	if err != nil {
		return nil, err
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := bootstrap.OpenDB(cfg.Database.URL)
	if err != nil {
		_ = logging.Sync(logger)
		return nil, err
	}

	if err := bootstrap.Migrate(ctx, db); err != nil {
		_ = db.Close()
		_ = logging.Sync(logger)
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, db: db}, nil
}

func (r *runtime) close() {
	if err := r.db.Close(); err != nil {
		r.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = logging.Sync(r.logger)
}
