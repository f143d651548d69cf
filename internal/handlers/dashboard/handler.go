package dashboard

import (
	"hotel/infras/otel"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.GetStats)
		routerGroup.Get("/bookings/recent", handler.GetRecentBookings)
		routerGroup.Post("/reports/bookings", handler.ExportBookings)
	})
}

// GetStats returns the front desk overview.
// @Summary Dashboard statistics
// @Description Booking counts, revenue, today's arrivals and departures and current occupancy.
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetRecentBookings lists the latest reservations.
// @Summary Recent bookings
// @Tags Admin
// @Produce json
// @Param limit query integer false "Number of bookings (1-100, default 10)"
// @Success 200 {array} dto.RecentBooking
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/recent [get]
// @Security BearerAuth
func (handler *Handler) GetRecentBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRecentBookings")
	defer scope.End()

	req := dto.RecentRequest{}

	if limit := r.URL.Query().Get(constant.RequestParamLimit); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			response.WithError(w, failure.Validation("limit must be a number"))

			return
		}

		req.Limit = n
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.Recent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get recent bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// ExportBookings writes a CSV of the bookings checking in within a range and stores it.
// @Summary Export a booking report
// @Description Build a CSV of reservations whose check-in falls in [from, to] and upload it to object storage.
// @Tags Admin
// @Produce json
// @Param from query string true "First check-in date (YYYY-MM-DD)"
// @Param to query string true "Last check-in date (YYYY-MM-DD)"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reports/bookings [post]
// @Security BearerAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	query := r.URL.Query()
	req := dto.ReportRequest{
		From: query.Get(constant.RequestParamFrom),
		To:   query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	report, err := handler.service.ExportReport(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export booking report")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("booking report exported", map[string]any{"rows": report.Rows, "user": user})

	response.WithJSON(w, http.StatusCreated, report)
}
