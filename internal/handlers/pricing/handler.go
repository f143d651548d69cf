package pricing

import (
	"hotel/infras/otel"
	"hotel/internal/domains/pricing/model/dto"
	"hotel/internal/domains/pricing/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Get("/quote", handler.GetQuote)
	})
}

// GetQuote prices a stay.
// @Summary Quote a stay
// @Description Price every night of a stay, add taxes and optionally show the total in another currency.
// @Tags Pricing
// @Produce json
// @Param room_type query string true "Room type code"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param currency query string false "ISO 4217 display currency"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	query := r.URL.Query()
	req := dto.QuoteRequest{
		RoomType: query.Get(constant.RequestParamRoomType),
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
		Currency: strings.ToUpper(query.Get(constant.RequestParamCurrency)),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid quote query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote computed for " + req.RoomType)

	response.WithJSON(w, http.StatusOK, res)
}
