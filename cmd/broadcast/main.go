package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/config"
	"github.com/Alias1177/nifty-predictor/internal/notify"
	"github.com/Alias1177/nifty-predictor/internal/platform/logging"
	"github.com/Alias1177/nifty-predictor/internal/scheduler"
	"github.com/Alias1177/nifty-predictor/internal/service"
)

func main() {
	once := flag.Bool("once", false, "send one broadcast now and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := cfg.ValidateTelegram(); err != nil {
		log.Fatal().Err(err).Msg("Telegram is not configured")
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize Telegram bot
	telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	sched := scheduler.New(service.NewFromConfig(cfg), telegram, cfg.Location())

	if *once {
		if err := sched.RunNow(ctx); err != nil {
			log.Fatal().Err(err).Msg("Broadcast failed")
		}
		return
	}

	if err := sched.Register(cfg.SetupCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule broadcast")
	}
	sched.Start()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
}
