package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	notificationModel "hotel/internal/domains/notification/model"
	notificationService "hotel/internal/domains/notification/service"
	"hotel/internal/domains/pricing/ratetable"
	pricingService "hotel/internal/domains/pricing/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation       = "reservation:get"
	cacheGetReservationByCode = "reservation:code"
	cacheGetAllReservation    = "reservation:gets"
	cacheCountReservation     = "reservation:count"

	defaultInsertRetries = 3
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetByCode(ctx context.Context, code string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	CancelByCode(ctx context.Context, code string) (dto.ReservationResponse, error)
	AttachPaymentIntent(ctx context.Context, id, intentID, currency string) error
	MarkPaid(ctx context.Context, intentID string) (dto.ReservationResponse, error)
	MarkPaymentFailed(ctx context.Context, intentID string) error
}

type serviceImpl struct {
	repo         repository.Reservation
	availability availabilityService.Availability
	pricing      pricingService.Pricing
	notification notificationService.Notification
	table        *ratetable.Table
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	availability availabilityService.Availability,
	pricing pricingService.Pricing,
	notification notificationService.Notification,
	table *ratetable.Table,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		pricing:      pricing,
		notification: notification,
		table:        table,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func filterBy(field string, value any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// casFilter matches the row only while its status is still the one the caller read.
func casFilter(id, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func actor(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != "" {
		return user
	}

	return constant.ContextGuest
}

// validateCreate runs the business checks the struct tags cannot express and reports every failing field at once.
func (s *serviceImpl) validateCreate(req dto.CreateReservationRequest) (time.Time, time.Time, error) {
	var details []string

	checkIn, errIn := timezone.ParseDate(req.CheckIn)
	if errIn != nil {
		details = append(details, "check_in must be a date in YYYY-MM-DD format")
	} else if checkIn.Before(timezone.Today()) {
		details = append(details, "check_in cannot be in the past")
	}

	checkOut, errOut := timezone.ParseDate(req.CheckOut)
	if errOut != nil {
		details = append(details, "check_out must be a date in YYYY-MM-DD format")
	}

	if errIn == nil && errOut == nil {
		nights := int(checkOut.Sub(checkIn).Hours() / 24) //nolint:mnd

		switch {
		case !checkOut.After(checkIn):
			details = append(details, "check_out must be after check_in")
		case nights > s.pricing.MaxNights():
			details = append(details, fmt.Sprintf("stay cannot exceed %d nights", s.pricing.MaxNights()))
		}
	}

	roomType, ok := s.table.RoomType(req.RoomType)
	if !ok {
		details = append(details, fmt.Sprintf("room_type %s is not offered", req.RoomType))
	} else if req.GuestCount > roomType.MaxGuests {
		details = append(details, fmt.Sprintf("guest_count cannot exceed %d for %s", roomType.MaxGuests, roomType.Code))
	}

	if req.GuestCount < 1 {
		details = append(details, "guest_count must be at least 1")
	}

	if len(details) > 0 {
		return checkIn, checkOut, failure.Validation(details...) // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (s *serviceImpl) insertRetries() int {
	if s.cfg.Booking.InsertRetries > 0 {
		return s.cfg.Booking.InsertRetries
	}

	return defaultInsertRetries
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.Finish(&err)

	checkIn, checkOut, err := s.validateCreate(req)
	if err != nil {
		return res, err
	}

	availability, err := s.availability.Check(ctx, checkIn, checkOut, req.RoomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if availability[req.RoomType].Available == 0 {
		return res, failure.Capacity("no rooms available for the selected dates") // nolint:wrapcheck
	}

	quote, err := s.pricing.Price(ctx, req.RoomType, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to price reservation")

		return res, fmt.Errorf("failed to price reservation: %w", err)
	}

	user := actor(ctx)
	source := model.SourceGuest

	if user != constant.ContextGuest {
		source = model.SourceAdmin
	}

	params := model.NewReservationParams{
		Guest:           req.Guest(),
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
		Source:          source,
		Actor:           user,
	}

	var reservation model.Reservation

	for attempt := 1; ; attempt++ {
		code, err := model.GenerateConfirmationCode(s.cfg.Booking.CodePrefix)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate confirmation code")

			return res, fmt.Errorf("failed to generate confirmation code: %w", err)
		}

		reservation = model.NewReservation(params, quote, code)

		err = s.repo.InsertIfAvailable(ctx, reservation, s.table.Inventory(req.RoomType))
		if err == nil {
			break
		}

		if errors.Is(err, repository.ErrCapacityExceeded) {
			log.Warn().Str("room_type", req.RoomType).Msg("capacity taken by a concurrent booking")

			return res, failure.Conflict("the last available room was just booked, please choose other dates") // nolint:wrapcheck
		}

		if errors.Is(err, repository.ErrDuplicateCode) && attempt < s.insertRetries() {
			log.Warn().Str("code", code).Int("attempt", attempt).Msg("confirmation code collision, regenerating")

			continue
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	scope.SetAttribute("confirmation_code", reservation.ConfirmationCode)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notify(c, notificationModel.EventBookingCreated, reservation)
		s.invalidate(c, reservation)
	}()

	res.ConfirmationCode = reservation.ConfirmationCode
	res.Reservation.FromModel(reservation)

	return res, nil
}

// notify never fails the caller: the booking stands whether or not the guest hears about it.
func (s *serviceImpl) notify(ctx context.Context, eventType string, reservation model.Reservation) {
	if err := s.notification.Send(ctx, eventType, reservation); err != nil {
		log.Error().Err(err).Str("code", reservation.ConfirmationCode).Str("event", eventType).Msg("failed to send booking notification")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, reservation model.Reservation) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation from cache")
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservationByCode, reservation.ConfirmationCode)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.Finish(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) getCached(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res dto.ReservationResponse, err error) {
	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.Finish(&err)

	return s.getCached(ctx, shared.BuildCacheKey(cacheGetReservation, id), filterBy(model.FieldID, id))
}

// GetByCode looks a reservation up by its confirmation code, case-insensitively.
func (s *serviceImpl) GetByCode(ctx context.Context, code string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCode")
	defer scope.Finish(&err)

	code = strings.ToUpper(strings.TrimSpace(code))

	return s.getCached(ctx, shared.BuildCacheKey(cacheGetReservationByCode, code), filterBy(model.FieldConfirmationCode, code))
}

// Update edits contact details, requests, notes and status. Status changes are checked against
// the lifecycle and applied as a compare-and-set on the status the caller saw.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.Finish(&err)

	if req == (dto.UpdateReservationRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.find(ctx, filterBy(model.FieldID, id))
	if err != nil {
		return res, err
	}

	if req.Status == current.Status {
		req.Status = constant.Empty
	}

	if req.Status == model.StatusCancelled {
		if current.Status == model.StatusCompleted {
			return res, failure.Conflict("completed reservations cannot be cancelled") // nolint:wrapcheck
		}
	} else if req.Status != constant.Empty {
		if current.IsTerminal() {
			return res, failure.Conflict(fmt.Sprintf("reservation is %s and can no longer change status", current.Status)) // nolint:wrapcheck
		}

		if current.Status == model.StatusCancelled {
			return res, failure.Conflict("cancelled reservations cannot be reactivated") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, actor(ctx))

	affected, err := s.repo.UpdateAffected(ctx, updatedFields, casFilter(id, current.Status))
	if err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict("reservation changed while updating, please retry") // nolint:wrapcheck
	}

	updated, err := s.find(ctx, filterBy(model.FieldID, id))
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if req.Status == model.StatusCancelled {
			s.notify(c, notificationModel.EventBookingCancelled, updated)
		}

		s.invalidate(c, updated)
	}()

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.Finish(&err)

	return s.cancel(ctx, filterBy(model.FieldID, id))
}

func (s *serviceImpl) CancelByCode(ctx context.Context, code string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelByCode")
	defer scope.Finish(&err)

	return s.cancel(ctx, filterBy(model.FieldConfirmationCode, strings.ToUpper(strings.TrimSpace(code))))
}

// cancel is idempotent: a cancelled reservation is returned unchanged. Freeing the room needs no
// extra step because availability is always derived from live statuses.
func (s *serviceImpl) cancel(ctx context.Context, filter gDto.FilterGroup) (res dto.ReservationResponse, err error) {
	current, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	switch current.Status {
	case model.StatusCancelled:
		res.FromModel(current)

		return res, nil
	case model.StatusCompleted:
		return res, failure.Conflict("completed reservations cannot be cancelled") // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor(ctx),
	}

	affected, err := s.repo.UpdateAffected(ctx, updatedFields, casFilter(current.ID, current.Status))
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return res, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if affected == 0 {
		latest, err := s.find(ctx, filterBy(model.FieldID, current.ID))
		if err != nil {
			return res, err
		}

		if latest.Status != model.StatusCancelled {
			return res, failure.Conflict(fmt.Sprintf("reservation became %s while cancelling", latest.Status)) // nolint:wrapcheck
		}

		res.FromModel(latest)

		return res, nil
	}

	current.Status = model.StatusCancelled
	current.ModifiedAt = now
	current.ModifiedBy = actor(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notify(c, notificationModel.EventBookingCancelled, current)
		s.invalidate(c, current)
	}()

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) AttachPaymentIntent(ctx context.Context, id, intentID, currency string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AttachPaymentIntent")
	defer scope.Finish(&err)

	current, err := s.find(ctx, filterBy(model.FieldID, id))
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldPaymentIntentID: intentID,
		model.FieldPaymentCurrency: currency,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   constant.ContextSystem,
	}

	if err := s.repo.Update(ctx, updatedFields, filterBy(model.FieldID, id)); err != nil {
		log.Error().Err(err).Msg("failed to attach payment intent")

		return fmt.Errorf("failed to attach payment intent: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), current)

	return nil
}

// MarkPaid applies a payment success: payment_status=paid and status=confirmed in one
// conditional update. Replays of the same success are no-ops; a reservation that no longer
// holds inventory is never marked paid.
func (s *serviceImpl) MarkPaid(ctx context.Context, intentID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaid")
	defer scope.Finish(&err)

	current, err := s.find(ctx, filterBy(model.FieldPaymentIntentID, intentID))
	if err != nil {
		return res, err
	}

	if current.PaymentStatus == model.PaymentPaid {
		log.Info().Str("code", current.ConfirmationCode).Msg("payment already applied")

		res.FromModel(current)

		return res, nil
	}

	if !current.IsActive() {
		return res, failure.Conflict(fmt.Sprintf("reservation is %s, payment cannot be applied", current.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldPaymentStatus: model.PaymentPaid,
		model.FieldStatus:        model.StatusConfirmed,
		model.FieldPaidAt:        now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    current.ID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_payment_status",
				Field:    model.FieldPaymentStatus,
				Value:    model.PaymentPaid,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	affected, err := s.repo.UpdateAffected(ctx, updatedFields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to mark reservation paid")

		return res, fmt.Errorf("failed to mark reservation paid: %w", err)
	}

	if affected == 0 {
		latest, err := s.find(ctx, filterBy(model.FieldID, current.ID))
		if err != nil {
			return res, err
		}

		if latest.PaymentStatus != model.PaymentPaid {
			return res, failure.Conflict(fmt.Sprintf("reservation is %s, payment cannot be applied", latest.Status)) // nolint:wrapcheck
		}

		res.FromModel(latest)

		return res, nil
	}

	current.PaymentStatus = model.PaymentPaid
	current.Status = model.StatusConfirmed
	current.PaidAt = &now
	current.ModifiedAt = now
	current.ModifiedBy = constant.ContextSystem

	go func() {
		c := context.WithoutCancel(ctx)

		s.notify(c, notificationModel.EventBookingConfirmed, current)
		s.invalidate(c, current)
	}()

	res.FromModel(current)

	return res, nil
}

// MarkPaymentFailed records a failed attempt. The booking stays pending and keeps its room so the guest can retry.
func (s *serviceImpl) MarkPaymentFailed(ctx context.Context, intentID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaymentFailed")
	defer scope.Finish(&err)

	current, err := s.find(ctx, filterBy(model.FieldPaymentIntentID, intentID))
	if err != nil {
		return err
	}

	if current.PaymentStatus == model.PaymentPaid || current.PaymentStatus == model.PaymentFailed {
		return nil
	}

	updatedFields := map[string]any{
		model.FieldPaymentStatus: model.PaymentFailed,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    current.ID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_payment_status",
				Field:    model.FieldPaymentStatus,
				Value:    model.PaymentPaid,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if _, err := s.repo.UpdateAffected(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark payment failed")

		return fmt.Errorf("failed to mark payment failed: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), current)

	return nil
}
