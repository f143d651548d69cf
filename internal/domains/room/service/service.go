package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/pricing/ratetable"
	pricingService "hotel/internal/domains/pricing/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
)

type Room interface {
	GetAll(ctx context.Context, req dto.ListRoomsRequest) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, code string, req dto.ListRoomsRequest) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, code string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, code string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo         repository.RoomType
	table        *ratetable.Table
	pricing      pricingService.Pricing
	availability availabilityService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo repository.RoomType,
	table *ratetable.Table,
	pricing pricingService.Pricing,
	availability availabilityService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:         repo,
		table:        table,
		pricing:      pricing,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

func byCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Value:    code,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) rooms(ctx context.Context) (res []model.RoomType, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetAllRoom, "active")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldBaseRate, SortDir: gDto.SortDirAsc}

	res, err = s.repo.GetAll(ctx, params, repository.ActiveFilter(model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

// stay parses the optional dates. ok is false when the caller asked for the plain catalogue.
func stay(req dto.ListRoomsRequest) (checkIn, checkOut time.Time, ok bool, err error) {
	if req.CheckIn == "" && req.CheckOut == "" {
		return checkIn, checkOut, false, nil
	}

	checkIn, checkOut, err = pricingService.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return checkIn, checkOut, false, err //nolint:wrapcheck
	}

	if checkIn.Before(timezone.Today()) {
		return checkIn, checkOut, false, failure.Validation("check_in cannot be in the past") // nolint:wrapcheck
	}

	return checkIn, checkOut, true, nil
}

func (s *serviceImpl) price(ctx context.Context, code string, checkIn, checkOut time.Time, availability availabilityModel.Availability) (*dto.StayResponse, error) {
	quote, err := s.pricing.Price(ctx, code, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to price %s: %w", code, err)
	}

	room := availability[code]

	return &dto.StayResponse{
		CheckIn:     quote.CheckIn.Format(constant.DateOnlyFormat),
		CheckOut:    quote.CheckOut.Format(constant.DateOnlyFormat),
		Nights:      quote.Nights,
		Subtotal:    quote.Subtotal.StringFixed(2),
		Taxes:       quote.Taxes.StringFixed(2),
		Total:       quote.Total.StringFixed(2),
		Available:   room.Available,
		IsAvailable: room.Available > 0,
	}, nil
}

// GetAll lists the active room types, cheapest first. With dates, each room also carries the
// priced stay and how many units are free for it.
func (s *serviceImpl) GetAll(ctx context.Context, req dto.ListRoomsRequest) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.Finish(&err)

	checkIn, checkOut, withStay, err := stay(req)
	if err != nil {
		return res, err
	}

	rooms, err := s.rooms(ctx)
	if err != nil {
		return res, err
	}

	var availability availabilityModel.Availability

	if withStay {
		availability, err = s.availability.Check(ctx, checkIn, checkOut, "")
		if err != nil {
			return res, fmt.Errorf("failed to check availability: %w", err)
		}
	}

	res.Rooms = make([]dto.RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		if req.Guests > room.MaxGuests {
			continue
		}

		rate, priced := s.table.RoomType(room.Code)

		var item dto.RoomResponse
		item.FromModel(room, rate)

		if withStay && priced {
			if item.Stay, err = s.price(ctx, room.Code, checkIn, checkOut, availability); err != nil {
				log.Error().Err(err).Str("room_type", room.Code).Msg("failed to price room")

				return res, err
			}
		}

		res.Rooms = append(res.Rooms, item)
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, code string) (res model.RoomType, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetRoom, code)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	res, err = s.repo.Get(ctx, byCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, code string, req dto.ListRoomsRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.Finish(&err)

	checkIn, checkOut, withStay, err := stay(req)
	if err != nil {
		return res, err
	}

	room, err := s.find(ctx, code)
	if err != nil {
		return res, err
	}

	if !room.Active {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	rate, priced := s.table.RoomType(room.Code)
	res.FromModel(room, rate)

	if withStay && priced {
		availability, err := s.availability.Check(ctx, checkIn, checkOut, room.Code)
		if err != nil {
			return res, fmt.Errorf("failed to check availability: %w", err)
		}

		if res.Stay, err = s.price(ctx, room.Code, checkIn, checkOut, availability); err != nil {
			log.Error().Err(err).Str("room_type", room.Code).Msg("failed to price room")

			return res, err
		}
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, code)); err != nil {
		log.Error().Err(err).Msg("failed to delete room from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.Finish(&err)

	if req == (dto.UpdateRoomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.find(ctx, code); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), byCode(code)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), code)

	return nil
}

// UploadImage stores the new picture first and removes the previous object only once the row points at the new one.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, code string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UploadImage")
	defer scope.Finish(&err)

	room, err := s.find(ctx, code)
	if err != nil {
		return res, err
	}

	filename := uuid.NewString() + path.Ext(req.Image.Filename)

	url, err := s.s3.Put(ctx, s3.Object{
		Directory:   model.TableName,
		Name:        filename,
		ContentType: req.Image.Header.Get(constant.RequestHeaderContentType),
		Body:        req.ImageFile,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldImage:         url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, byCode(code)); err != nil {
		if rollbackErr := s.s3.Delete(ctx, model.TableName, filename); rollbackErr != nil {
			log.Error().Err(rollbackErr).Str("image", filename).Msg("failed to remove orphaned room image")
		}

		log.Error().Err(err).Msg("failed to update room image")

		return res, fmt.Errorf("failed to update room image: %w", err)
	}

	previous := room.Image
	room.Image = url

	if previous != constant.Empty {
		go func(c context.Context, name string) {
			if err := s.s3.Delete(c, model.TableName, name); err != nil {
				log.Error().Err(err).Str("image", name).Msg("failed to delete previous room image")
			}
		}(context.WithoutCancel(ctx), path.Base(previous))
	}

	go s.invalidate(context.WithoutCancel(ctx), code)

	rate, _ := s.table.RoomType(room.Code)
	res.FromModel(room, rate)

	return res, nil
}
