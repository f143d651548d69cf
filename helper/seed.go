package helper

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/internal/domains/pricing/ratetable"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SeedResult struct {
	RoomTypes int
	Seasons   int
	Admin     bool
}

// Seed inserts the stock catalogue, the seasonal calendar for the configured number of years
// starting with the current one, and the first superadmin. Rows that already exist are kept.
func Seed(
	ctx context.Context,
	rooms roomRepository.RoomType,
	seasons roomRepository.Season,
	users userRepository.User,
	cfg *config.Config,
) (res SeedResult, err error) {
	now := timezone.Now()
	metadata := gModel.NewMetadata(constant.ContextSystem, now)

	for _, roomType := range ratetable.DefaultRoomTypes() {
		exist, err := rooms.Exist(ctx, shared.FilterByID(roomType.Code, roomModel.FieldCode, roomModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to check room type %s: %w", roomType.Code, err)
		}

		if exist {
			continue
		}

		err = rooms.Insert(ctx, roomModel.RoomType{
			ID:             uuid.NewString(),
			Code:           roomType.Code,
			Name:           roomType.Name,
			Description:    roomType.Description,
			BaseRate:       roomType.BaseRate,
			MaxGuests:      roomType.MaxGuests,
			TotalInventory: roomType.TotalInventory,
			Active:         true,
			Metadata:       metadata,
		})
		if err != nil {
			return res, fmt.Errorf("failed to insert room type %s: %w", roomType.Code, err)
		}

		res.RoomTypes++
	}

	years := max(cfg.Seed.Years, 1)

	for offset := range years {
		year := now.Year() + offset

		for priority, season := range ratetable.DefaultSeasons(year) {
			inserted, err := seedSeason(ctx, seasons, season, priority+1, metadata)
			if err != nil {
				return res, err
			}

			if inserted {
				res.Seasons++
			}
		}
	}

	res.Admin, err = seedAdmin(ctx, users, cfg, metadata)
	if err != nil {
		return res, err
	}

	log.Info().Int("room_types", res.RoomTypes).Int("seasons", res.Seasons).Bool("admin", res.Admin).Msg("Seeding completed")

	return res, nil
}

func seedSeason(ctx context.Context, seasons roomRepository.Season, season ratetable.SeasonalPeriod, priority int, metadata gModel.Metadata) (bool, error) {
	filter := gDto.And(
		gDto.Eq(roomModel.SeasonTableName, roomModel.FieldName, season.Name),
		gDto.Eq(roomModel.SeasonTableName, roomModel.FieldStartDate, season.StartDate.Format(constant.DateOnlyFormat)),
	)

	exist, err := seasons.Exist(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check season %s: %w", season.Name, err)
	}

	if exist {
		return false, nil
	}

	err = seasons.Insert(ctx, roomModel.SeasonalPeriod{
		ID:         uuid.NewString(),
		Name:       season.Name,
		StartDate:  season.StartDate,
		EndDate:    season.EndDate,
		Multiplier: season.Multiplier,
		Priority:   priority,
		Active:     true,
		Metadata:   metadata,
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert season %s: %w", season.Name, err)
	}

	return true, nil
}

func seedAdmin(ctx context.Context, users userRepository.User, cfg *config.Config, metadata gModel.Metadata) (bool, error) {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping superadmin")

		return false, nil
	}

	exist, err := users.Exist(ctx, shared.FilterByID(cfg.Seed.AdminEmail, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check superadmin: %w", err)
	}

	if exist {
		return false, nil
	}

	hashed, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash superadmin password: %w", err)
	}

	req := userDto.CreateUserRequest{
		Email: cfg.Seed.AdminEmail,
		Level: constant.RoleSuperAdmin,
	}

	admin := req.ToModel(constant.ContextSystem, hashed)
	admin.Metadata = metadata

	if err = users.Insert(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to insert superadmin: %w", err)
	}

	return true, nil
}
