package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/bootstrap"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	// Operator output goes to stdout; keep process logs out of it.
	cfg.Logger.Level = "error"
	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// withApp runs fn against a fully wired gateway and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}
