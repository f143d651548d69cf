package main

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/di"
	"hotel/infras/otel"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)
	logger.SetLogFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", cfg.Kafka.Topic.Notification).Msg("Booking notifier started")

	notifier := di.InitializeNotifier()
	if err := notifier.Consume(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Booking notifier stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := otel.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Notifier traces were not flushed")
	}

	log.Info().Msg("Booking notifier stopped")
}
