package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-eventdesk/internal/bootstrap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			app, err := bootstrap.Build(ctx, rt.cfg, rt.logger, rt.db)
			if err != nil {
				return err
			}

			rt.logger.Sugar().Infow("starting server", rt.cfg.LogFields()...)

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.HTTP.Listen(rt.cfg.HTTP.Addr())
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := app.HTTP.ShutdownWithContext(shutdownCtx); err != nil {
				rt.logger.Error("server shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
