package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/mail"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/notification/model"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultMaxAttempts = 3

type Notification interface {
	Send(ctx context.Context, eventType string, reservation bookingModel.Reservation) error
	Deliver(ctx context.Context, event model.BookingEvent) error
	Consume(ctx context.Context) error
}

type serviceImpl struct {
	kafka  kafka.Client
	mailer mail.Mailer
	cfg    *config.Config
	otel   otel.Otel
}

func New(kafka kafka.Client, mailer mail.Mailer, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		kafka:  kafka,
		mailer: mailer,
		cfg:    cfg,
		otel:   otel,
	}
}

// Send hands a booking event to the notification channel: the Kafka topic when the broker is
// enabled, otherwise straight to the mailer.
func (s *serviceImpl) Send(ctx context.Context, eventType string, reservation bookingModel.Reservation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Send")
	defer scope.Finish(&err)

	event := model.NewBookingEvent(eventType, reservation)

	if !s.cfg.Kafka.Enable {
		return s.Deliver(ctx, event)
	}

	err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.Notification, kafka.Message{
		Key:   event.ConfirmationCode,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("code", event.ConfirmationCode).Msg("failed to publish booking notification")

		return fmt.Errorf("failed to publish booking notification: %w", err)
	}

	return nil
}

// Deliver renders and mails the event, retrying with a linear backoff.
func (s *serviceImpl) Deliver(ctx context.Context, event model.BookingEvent) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Deliver")
	defer scope.Finish(&err)

	message, err := Render(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to render booking notification")

		return fmt.Errorf("failed to render booking notification: %w", err)
	}

	attempts := s.cfg.Mail.MaxRetry
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	delay := time.Duration(s.cfg.Mail.RetryDelay) * time.Second

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = s.mailer.Send(ctx, message); err == nil {
			log.Info().Str("code", event.ConfirmationCode).Str("type", event.Type).Msg("booking notification delivered")

			return nil
		}

		log.Warn().Err(err).Int("attempt", attempt).Str("code", event.ConfirmationCode).Msg("failed to send booking notification")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("notification delivery interrupted: %w", ctx.Err())
		case <-time.After(delay * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("failed to deliver booking notification after %d attempts: %w", attempts, err)
}

// Consume delivers events from the notification topic until ctx is done.
func (s *serviceImpl) Consume(ctx context.Context) error {
	topic := s.cfg.Kafka.Topic.Notification

	log.Info().Str("topic", topic).Msg("Starting booking notification consumer")

	return s.kafka.Consume(ctx, s.cfg.Kafka.ConsumerGroup, topic, func(ctx context.Context, message kafkaGo.Message) error { //nolint:wrapcheck
		event, err := kafka.Decode[model.BookingEvent](message)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return s.Deliver(ctx, event)
	})
}
