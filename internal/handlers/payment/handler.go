package payment

import (
	"hotel/infras/otel"
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxWebhookBytes = 1 << 20

type Handler struct {
	service    service.Payment
	middleware middleware.AppMiddleware
	otel       otel.Otel
}

func New(service service.Payment, middleware middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.BookingLimit()).Post("/intents", handler.CreateIntent)
		routerGroup.Post("/confirm", handler.Confirm)
		routerGroup.Post("/webhook", handler.Webhook)
		routerGroup.Get("/status/{code}", handler.Status)
	})
}

// CreateIntent opens a payment for a pending booking.
// @Summary Create a payment intent
// @Description Open a gateway order for the booking total, converted to the requested currency.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest true "Create Intent Request"
// @Success 201 {object} dto.IntentResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/payments/intents [post]
func (handler *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentIntent")
	defer scope.End()

	req := dto.CreateIntentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	req.Currency = strings.ToUpper(req.Currency)

	res, err := handler.service.CreateIntent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment intent")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment intent created for " + res.ConfirmationCode)

	response.WithJSON(w, http.StatusCreated, res)
}

// Confirm checks a payment with the gateway and confirms the booking once it is captured.
// @Summary Confirm a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmRequest true "Confirm Request"
// @Success 200 {object} bookingDto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/confirm [post]
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	var booking bookingDto.ReservationResponse

	booking, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("intent_id", req.IntentID).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment confirmed for " + booking.ConfirmationCode)

	response.WithJSON(w, http.StatusOK, booking)
}

// Webhook receives gateway events. The raw body is needed for the signature check.
// @Summary Payment gateway webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "HMAC signature of the body"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.HandleWebhook(ctx, body, r.Header.Get(constant.RequestHeaderWebhookSignature))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(w, err)

		return
	}

	scope.SetAttributes(map[string]any{
		"payment.event":   res.Event,
		"payment.handled": res.Handled,
	})

	response.WithJSON(w, http.StatusOK, res)
}

// Status reports the payment state of a booking.
// @Summary Payment status
// @Tags Payment
// @Produce json
// @Param code path string true "Confirmation code"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/status/{code} [get]
func (handler *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentStatus")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	res, err := handler.service.Status(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to get payment status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
