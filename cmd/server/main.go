package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/config"
	"github.com/Alias1177/nifty-predictor/internal/platform/logging"
	"github.com/Alias1177/nifty-predictor/internal/server"
	"github.com/Alias1177/nifty-predictor/internal/service"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// 2. Configure logging
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("data_source", cfg.DataSource).
		Str("symbol", cfg.Symbol).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("Starting NIFTY dashboard API")

	// 3. Wire the dashboard and serve
	dashboard := service.NewFromConfig(cfg)
	srv := server.New(dashboard, server.Options{
		MetricsEnabled: cfg.MetricsEnabled,
		LevelLookback:  cfg.LevelLookback,
		NearThreshold:  cfg.NearThreshold,
	})

	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
	log.Info().Msg("Server stopped")
}
