package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/bootstrap"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
)

// @title                       Taler Merchant Gateway
// @version                     1.0
// @description                 Connects a shop's order records to a GNU Taler merchant backend: payment, fulfillment callback and refunds.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"backend", cfg.Backend.BaseURL,
		"diagnostics", cfg.Logger.Diagnostics,
	)

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize gateway", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if app.Negotiator.NeedsSetup(ctx) {
		logger.Warn("merchant backend is unreachable or incompatible; payments will fail until it is configured",
			"backend", cfg.Backend.BaseURL,
		)
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      app.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
