package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/pricing/ratetable"
	pricingService "hotel/internal/domains/pricing/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Check(ctx context.Context, checkIn, checkOut time.Time, roomType string) (model.Availability, error)
	Query(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo  bookingRepo.Reservation
	table *ratetable.Table
	otel  otel.Otel
}

func New(repo bookingRepo.Reservation, table *ratetable.Table, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		table: table,
		otel:  otel,
	}
}

// Check derives availability live from the active reservations overlapping [checkIn, checkOut).
// A collapsed range (checkIn == checkOut) is read as the single night starting that day.
func (s *serviceImpl) Check(ctx context.Context, checkIn, checkOut time.Time, roomType string) (res model.Availability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.Check")
	defer scope.Finish(&err)

	from := timezone.Date(checkIn)
	to := timezone.Date(checkOut)

	if to.Equal(from) {
		to = from.AddDate(0, 0, 1)
	}

	if to.Before(from) {
		return res, failure.Validation("check_out must not be before check_in") // nolint:wrapcheck
	}

	codes := s.table.Codes()
	if roomType != "" {
		if _, ok := s.table.RoomType(roomType); !ok {
			return res, failure.Validation(fmt.Sprintf("room_type %s is not offered", roomType)) // nolint:wrapcheck
		}

		codes = []string{roomType}
	}

	reservations, err := s.repo.FindOverlapping(ctx, roomType, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping reservations")

		return res, fmt.Errorf("failed to find overlapping reservations: %w", err)
	}

	booked := make(map[string]int, len(codes))

	for _, reservation := range reservations {
		// Only active rows inside the range count.
		if !reservation.IsActive() || !reservation.Overlaps(from, to) {
			continue
		}

		booked[reservation.RoomType]++
	}

	res = make(model.Availability, len(codes))

	for _, code := range codes {
		total := s.table.Inventory(code)

		res[code] = model.RoomAvailability{
			Total:     total,
			Booked:    booked[code],
			Available: max(0, total-booked[code]),
		}
	}

	return res, nil
}

// Query answers the public availability question. Without dates it reports tonight.
func (s *serviceImpl) Query(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.Query")
	defer scope.Finish(&err)

	checkIn := timezone.Today()
	checkOut := checkIn.AddDate(0, 0, 1)

	if req.CheckIn != "" || req.CheckOut != "" {
		checkIn, checkOut, err = pricingService.ParseStay(req.CheckIn, req.CheckOut)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		if checkIn.Before(timezone.Today()) {
			return res, failure.Validation("check_in cannot be in the past") // nolint:wrapcheck
		}
	}

	availability, err := s.Check(ctx, checkIn, checkOut, req.RoomType)
	if err != nil {
		return res, err
	}

	res.FromModel(availability, s.table.RoomTypes(), checkIn, checkOut)

	return res, nil
}
