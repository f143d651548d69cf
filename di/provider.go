package di

import (
	"context"
	"hotel/config"
	"hotel/internal/domains/pricing/ratetable"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"

	"github.com/rs/zerolog/log"
)

// provideRateTable loads the catalogue once. The process cannot price anything without it.
func provideRateTable(rooms roomRepository.RoomType, seasons roomRepository.Season, cfg *config.Config) *ratetable.Table {
	table, err := roomService.LoadRateTable(context.Background(), rooms, seasons, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load rate table")
	}

	return table
}
