package booking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AppMiddleware
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.BookingLimit()).Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/confirmation/{code}", handler.GetBookingByCode)
		routerGroup.With(handler.middleware.BookingLimit()).Post("/confirmation/{code}/cancel", handler.CancelBookingByCode)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateBooking reserves a room for a guest.
// @Summary Create a booking
// @Description Validate the stay, check availability, price it and store a pending reservation.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Booking Request"
// @Success 201 {object} dto.CreateReservationResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("booking created", map[string]any{"confirmation_code": res.ConfirmationCode, "total_amount": res.Reservation.TotalAmount})

	response.WithJSON(writer, http.StatusCreated, res)
}

var sortable = []string{
	model.FieldCreatedAt, model.FieldCheckInDate, model.FieldCheckOutDate,
	model.FieldTotalAmount, model.FieldStatus, model.FieldLastName,
}

func listFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	eq := map[string]string{
		model.FieldStatus:   query.Get(constant.RequestParamStatus),
		model.FieldRoomType: query.Get(constant.RequestParamRoomType),
	}

	for _, field := range []string{model.FieldStatus, model.FieldRoomType} {
		if eq[field] == "" {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    eq[field],
			Table:    model.TableName,
		})
	}

	if email := query.Get(constant.RequestParamEmail); email != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if from := query.Get(constant.RequestParamFrom); validator.ValidateVar(from, "isodate") == nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "check_in_from",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to := query.Get(constant.RequestParamTo); validator.ValidateVar(to, "isodate") == nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "check_in_to",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	return filter
}

// GetBookings lists reservations for staff.
// @Summary List bookings
// @Description List reservations with pagination and optional filters.
// @Tags Booking
// @Produce json
// @Param page query integer false "Page"
// @Param limit query integer false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Param status query string false "Reservation status"
// @Param room_type query string false "Room type code"
// @Param email query string false "Guest email contains"
// @Param from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param to query string false "Check-in on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.GetReservationsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if !slices.Contains(sortable, queryParams.SortBy) {
		queryParams.SortBy = constant.DefaultValueSortBy
	}

	if err := validator.ValidateStruct(&queryParams); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, listFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a reservation for staff.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByCode lets a guest look up a reservation.
// @Summary Get a booking by confirmation code
// @Tags Booking
// @Produce json
// @Param code path string true "Confirmation code"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/confirmation/{code} [get]
func (handler *Handler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	booking, err := handler.service.GetByCode(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to get booking by code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking edits guest details, notes or status.
// @Summary Update a booking
// @Description Dates, room type and price never change. Completed and no-show bookings are final.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Booking Request"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a reservation on behalf of staff.
// @Summary Cancel a booking
// @Description Cancelling twice succeeds. Completed bookings cannot be cancelled.
// @Tags Booking
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBookingByCode lets a guest cancel with the confirmation code.
// @Summary Cancel a booking by confirmation code
// @Tags Booking
// @Produce json
// @Param code path string true "Confirmation code"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/bookings/confirmation/{code}/cancel [post]
func (handler *Handler) CancelBookingByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBookingByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	booking, err := handler.service.CancelByCode(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking by code")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled by guest " + code)

	response.WithJSON(w, http.StatusOK, booking)
}
