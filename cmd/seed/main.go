package main

import (
	"context"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	roomRepository "hotel/internal/domains/room/repository"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared/logger"
	"hotel/shared/password"
	"time"

	"github.com/rs/zerolog/log"
)

const seedTimeout = 2 * time.Minute

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	password.SetCost(cfg.Auth.BcryptCost)

	if cfg.Seed.Migrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate before seeding")
		}
	}

	db := postgres.New(cfg)
	defer db.Close()

	tracer := otel.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	_, err := helper.Seed(ctx,
		roomRepository.New(db, tracer),
		roomRepository.NewSeason(db, tracer),
		userRepository.New(db, tracer),
		cfg,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	if err = otel.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Seed traces were not flushed")
	}
}
