package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/internal/domains/pricing/ratetable"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/repository"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const defaultTaxRate = "0.16"

// LoadRateTable reads the active catalogue once and freezes it. Seasons are evaluated in
// priority order, so the lowest priority value wins when periods overlap.
func LoadRateTable(ctx context.Context, rooms repository.RoomType, seasons repository.Season, cfg *config.Config) (*ratetable.Table, error) {
	roomTypes, err := rooms.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldBaseRate, SortDir: gDto.SortDirAsc}, repository.ActiveFilter(model.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to load room types: %w", err)
	}

	periods, err := seasons.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldPriority, SortDir: gDto.SortDirAsc}, repository.ActiveFilter(model.SeasonTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to load seasonal periods: %w", err)
	}

	rates := make([]ratetable.RoomType, len(roomTypes))
	for i, roomType := range roomTypes {
		rates[i] = roomType.ToRate(periods)
	}

	taxRate := decimal.RequireFromString(defaultTaxRate)
	if cfg.Booking.TaxRate > 0 {
		taxRate = decimal.NewFromFloat(cfg.Booking.TaxRate)
	}

	table, err := ratetable.New(taxRate, rates)
	if err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}

	log.Info().Int("room_types", len(rates)).Int("seasons", len(periods)).Str("tax_rate", taxRate.String()).Msg("Rate table loaded")

	return table, nil
}
