package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/pricing/model"
	"hotel/internal/domains/pricing/model/dto"
	"hotel/internal/domains/pricing/ratetable"
	"hotel/shared/constant"
	"hotel/shared/currency"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Pricing interface {
	Price(ctx context.Context, roomType string, checkIn, checkOut time.Time) (model.Quote, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	MaxNights() int
}

type serviceImpl struct {
	table *ratetable.Table
	cfg   *config.Config
	otel  otel.Otel
}

func New(table *ratetable.Table, cfg *config.Config, otel otel.Otel) Pricing {
	return &serviceImpl{
		table: table,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) MaxNights() int {
	if n := s.cfg.Booking.MaxNights; n > 0 && n < model.DefaultMaxNights {
		return n
	}

	return model.DefaultMaxNights
}

// Price walks the stay night by night. Sums stay at full precision; only the outputs are rounded.
func (s *serviceImpl) Price(ctx context.Context, roomType string, checkIn, checkOut time.Time) (quote model.Quote, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Price")
	defer scope.Finish(&err)

	nights := model.CountNights(checkIn, checkOut)
	if nights < 1 || nights > s.MaxNights() {
		return quote, failure.Validation(fmt.Sprintf("stay must be between 1 and %d nights", s.MaxNights())) // nolint:wrapcheck
	}

	if _, ok := s.table.RoomType(roomType); !ok {
		return quote, failure.Validation(fmt.Sprintf("room_type %s is not offered", roomType)) // nolint:wrapcheck
	}

	start := timezone.Date(checkIn)
	subtotal := decimal.Zero
	nightly := make([]model.NightRate, 0, nights)

	for night := range nights {
		date := start.AddDate(0, 0, night)

		rate, err := s.table.RateForNight(roomType, date)
		if err != nil {
			log.Error().Err(err).Str("room_type", roomType).Msg("failed to look up nightly rate")

			return quote, fmt.Errorf("failed to look up nightly rate: %w", err)
		}

		subtotal = subtotal.Add(rate)
		nightly = append(nightly, model.NightRate{Date: date, Rate: rate})
	}

	roundedSubtotal := subtotal.Round(model.MoneyPlaces)
	taxes := subtotal.Mul(s.table.TaxRate()).Round(model.MoneyPlaces)

	scope.SetAttributes(map[string]any{
		"room_type": roomType,
		"nights":    nights,
	})

	return model.Quote{
		RoomType:    roomType,
		CheckIn:     start,
		CheckOut:    start.AddDate(0, 0, nights),
		Nights:      nights,
		NightlyRate: nightly[0].Rate.Round(model.MoneyPlaces),
		Subtotal:    roundedSubtotal,
		Taxes:       taxes,
		Total:       roundedSubtotal.Add(taxes),
		TaxRate:     s.table.TaxRate(),
		Nightly:     nightly,
	}, nil
}

// Quote prices a stay from request fields and optionally shows the total in another currency.
// Conversion only ever touches the computed total; the stay is never re-priced.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.Finish(&err)

	checkIn, checkOut, err := ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	quote, err := s.Price(ctx, req.RoomType, checkIn, checkOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(quote, currency.Base)

	code := currency.Normalize(req.Currency)
	if code == currency.Base {
		return res, nil
	}

	converted, err := currency.Convert(quote.Total, code)
	if errors.Is(err, currency.ErrUnsupported) {
		return res, failure.Validation(fmt.Sprintf("currency %s is not supported", code)) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("currency", code).Msg("failed to convert quote total")

		return res, fmt.Errorf("failed to convert quote total: %w", err)
	}

	rate, _ := currency.Rate(code)

	res.Converted = &dto.ConvertedAmount{
		Currency:     code,
		ExchangeRate: rate.String(),
		Total:        dto.Money(converted),
	}

	return res, nil
}

// ParseStay parses both stay dates, reporting every malformed field together.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	var details []string

	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		details = append(details, "check_in must be a date in YYYY-MM-DD format")
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		details = append(details, "check_out must be a date in YYYY-MM-DD format")
	}

	if len(details) > 0 {
		return in, out, failure.Validation(details...) // nolint:wrapcheck
	}

	if !out.After(in) {
		return in, out, failure.Validation("check_out must be after check_in") // nolint:wrapcheck
	}

	return in, out, nil
}
