package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/payment"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/internal/domains/payment/model/dto"
	"hotel/shared/constant"
	"hotel/shared/currency"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (dto.IntentResponse, error)
	Confirm(ctx context.Context, req dto.ConfirmRequest) (bookingDto.ReservationResponse, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) (dto.WebhookResponse, error)
	Status(ctx context.Context, code string) (dto.StatusResponse, error)
}

type serviceImpl struct {
	repo    bookingRepo.Reservation
	booking bookingService.Booking
	gateway payment.Gateway
	cfg     *config.Config
	otel    otel.Otel
}

func New(
	repo bookingRepo.Reservation,
	booking bookingService.Booking,
	gateway payment.Gateway,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:    repo,
		booking: booking,
		gateway: gateway,
		cfg:     cfg,
		otel:    otel,
	}
}

func (s *serviceImpl) find(ctx context.Context, field, value string) (bookingModel.Reservation, error) {
	reservation, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// CreateIntent opens a provider payment for the reservation's canonical total, converted into the
// collection currency. A reservation holds one intent: asking again returns the intent on file,
// and switching currency once an order exists is refused so a payment against the first order
// still resolves to the booking.
func (s *serviceImpl) CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.CreateIntent")
	defer scope.Finish(&err)

	var reservation bookingModel.Reservation

	if req.ReservationID != "" {
		reservation, err = s.find(ctx, bookingModel.FieldID, req.ReservationID)
	} else {
		reservation, err = s.find(ctx, bookingModel.FieldConfirmationCode, strings.ToUpper(strings.TrimSpace(req.ConfirmationCode)))
	}

	if err != nil {
		return res, err
	}

	if reservation.PaymentStatus == bookingModel.PaymentPaid {
		return res, failure.Conflict("reservation is already paid") // nolint:wrapcheck
	}

	if !reservation.IsActive() {
		return res, failure.Conflict(fmt.Sprintf("reservation is %s and cannot be paid", reservation.Status)) // nolint:wrapcheck
	}

	existing := reservation.PaymentIntentID != nil && *reservation.PaymentIntentID != constant.Empty

	code := req.Currency

	switch {
	case code != constant.Empty:
	case existing && reservation.PaymentCurrency != constant.Empty:
		code = reservation.PaymentCurrency
	default:
		code = s.cfg.Payment.Currency
	}

	code = currency.Normalize(code)

	amount, err := currency.Convert(reservation.TotalAmount, code)
	if err != nil {
		return res, failure.Validation(fmt.Sprintf("currency %s is not supported", code)) // nolint:wrapcheck
	}

	res = dto.IntentResponse{
		ConfirmationCode: reservation.ConfirmationCode,
		KeyID:            s.cfg.Payment.KeyID,
		Currency:         code,
		Amount:           amount.StringFixed(2),
		AmountMinor:      currency.ToMinorUnits(amount),
		TotalUSD:         reservation.TotalAmount.StringFixed(2),
	}

	if existing {
		if reservation.PaymentCurrency != code {
			return dto.IntentResponse{}, failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
				"a payment in %s is already open for this reservation", reservation.PaymentCurrency))
		}

		res.IntentID = *reservation.PaymentIntentID

		return res, nil
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:    res.AmountMinor,
		Currency:  code,
		Reference: reservation.ConfirmationCode,
		Notes: map[string]string{
			"reservation_id":    reservation.ID,
			"confirmation_code": reservation.ConfirmationCode,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("code", reservation.ConfirmationCode).Msg("failed to create payment intent")

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err = s.booking.AttachPaymentIntent(ctx, reservation.ID, intent.ID, code); err != nil {
		return res, fmt.Errorf("failed to attach payment intent: %w", err)
	}

	res.IntentID = intent.ID

	return res, nil
}

// Confirm trusts the provider, not the caller: the intent is fetched and only a paid intent confirms the booking.
func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmRequest) (res bookingDto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.Confirm")
	defer scope.Finish(&err)

	intent, err := s.gateway.FetchIntent(ctx, req.IntentID)
	if err != nil {
		log.Error().Err(err).Str("intent_id", req.IntentID).Msg("failed to fetch payment intent")

		return res, fmt.Errorf("failed to fetch payment intent: %w", err)
	}

	if intent.Status != payment.IntentStatusPaid {
		return res, failure.Validation("payment not completed") // nolint:wrapcheck
	}

	return s.booking.MarkPaid(ctx, intent.ID) //nolint:wrapcheck
}

// HandleWebhook applies provider events. Outcomes that a redelivery cannot change (unknown intent,
// booking no longer payable) are acknowledged; store failures are returned so the provider retries.
func (s *serviceImpl) HandleWebhook(ctx context.Context, body []byte, signature string) (res dto.WebhookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.HandleWebhook")
	defer scope.Finish(&err)

	if !s.gateway.VerifyWebhook(body, signature) {
		log.Warn().Msg("rejected payment webhook with invalid signature")

		return res, failure.Unauthorized("invalid webhook signature") // nolint:wrapcheck
	}

	event, err := s.gateway.ParseWebhook(body)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res.Event = event.Type
	res.IntentID = event.IntentID

	if event.IntentID == "" || event.Type == payment.EventIgnored {
		log.Info().Str("event", event.Type).Msg("ignoring payment webhook")

		return res, nil
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		_, err = s.booking.MarkPaid(ctx, event.IntentID)
	case payment.EventPaymentFailed:
		err = s.booking.MarkPaymentFailed(ctx, event.IntentID)
	}

	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			log.Warn().Err(err).Str("intent_id", event.IntentID).Str("event", event.Type).Msg("payment webhook not applied")

			return res, nil
		}

		log.Error().Err(err).Str("intent_id", event.IntentID).Str("event", event.Type).Msg("failed to apply payment webhook")

		return res, fmt.Errorf("failed to apply payment webhook: %w", err)
	}

	res.Handled = true

	return res, nil
}

func (s *serviceImpl) Status(ctx context.Context, code string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.Status")
	defer scope.Finish(&err)

	reservation, err := s.find(ctx, bookingModel.FieldConfirmationCode, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}
