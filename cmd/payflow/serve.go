package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/payflow/pkg/httpserver"
	"github.com/dmitrymomot/payflow/pkg/logger"
)

func newServeCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(*envFiles)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			a, err := wireApp(ctx, cfg, log)
			if err != nil {
				log.ErrorContext(ctx, "startup failed", logger.Error(err))
				return err
			}
			defer a.close()

			srv := httpserver.New(cfg.HTTP, a.router(), httpserver.WithLogger(log))
			return srv.Run(ctx)
		},
	}
}

// commandContext returns the command context or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
