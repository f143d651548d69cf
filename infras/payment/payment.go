package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/rs/zerolog/log"
)

const (
	IntentStatusPending = "pending"
	IntentStatusPaid    = "paid"

	EventPaymentSucceeded = "succeeded"
	EventPaymentFailed    = "failed"
	EventIgnored          = "ignored"

	providerStatusPaid = "paid"
)

var ErrMalformedResponse = errors.New("malformed payment provider response")

// IntentRequest asks the provider to collect Amount, expressed in minor units of Currency.
type IntentRequest struct {
	Amount    int64
	Currency  string
	Reference string
	Notes     map[string]string
}

type Intent struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}

// Event is the provider independent view of a webhook delivery.
type Event struct {
	Type      string
	IntentID  string
	PaymentID string
	Method    string
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
	FetchIntent(ctx context.Context, id string) (Intent, error)
	VerifyWebhook(body []byte, signature string) bool
	ParseWebhook(body []byte) (Event, error)
}

type razorpayGateway struct {
	client *razorpay.Client
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Gateway {
	log.Info().Msg("Payment gateway initialized")

	return &razorpayGateway{
		client: razorpay.NewClient(config.Payment.KeyID, config.Payment.KeySecret),
		config: config,
		otel:   otel,
	}
}

func (g *razorpayGateway) CreateIntent(ctx context.Context, req IntentRequest) (res Intent, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateIntent")
	defer scope.Finish(&err)

	scope.SetAttributes(map[string]any{
		"payment.reference": req.Reference,
		"payment.currency":  req.Currency,
	})

	notes := map[string]interface{}{}
	for key, value := range req.Notes {
		notes[key] = value
	}

	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Reference,
		"notes":    notes,
	}, nil)
	if err != nil {
		log.Error().Err(err).Str("reference", req.Reference).Msg("Failed to create payment order")

		return res, fmt.Errorf("failed to create payment order: %w", err)
	}

	return toIntent(order)
}

func (g *razorpayGateway) FetchIntent(ctx context.Context, id string) (res Intent, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".FetchIntent")
	defer scope.Finish(&err)

	order, err := g.client.Order.Fetch(id, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("intent_id", id).Msg("Failed to fetch payment order")

		return res, fmt.Errorf("failed to fetch payment order: %w", err)
	}

	return toIntent(order)
}

func (g *razorpayGateway) VerifyWebhook(body []byte, signature string) bool {
	if signature == "" || g.config.Payment.WebhookSecret == "" {
		return false
	}

	return utils.VerifyWebhookSignature(string(body), signature, g.config.Payment.WebhookSecret)
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Method  string `json:"method"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (g *razorpayGateway) ParseWebhook(body []byte) (Event, error) {
	var payload webhookPayload

	if err := json.Unmarshal(body, &payload); err != nil {
		return Event{}, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	event := Event{
		Type:      EventIgnored,
		IntentID:  payload.Payload.Order.Entity.ID,
		PaymentID: payload.Payload.Payment.Entity.ID,
		Method:    payload.Payload.Payment.Entity.Method,
	}

	if event.IntentID == "" {
		event.IntentID = payload.Payload.Payment.Entity.OrderID
	}

	switch payload.Event {
	case "order.paid", "payment.captured":
		event.Type = EventPaymentSucceeded
	case "payment.failed":
		event.Type = EventPaymentFailed
	}

	return event, nil
}

func toIntent(order map[string]interface{}) (Intent, error) {
	id, _ := order["id"].(string)
	if id == "" {
		return Intent{}, ErrMalformedResponse
	}

	providerStatus, _ := order["status"].(string)
	currency, _ := order["currency"].(string)
	amount, _ := order["amount"].(float64)

	status := IntentStatusPending
	if providerStatus == providerStatusPaid {
		status = IntentStatusPaid
	}

	return Intent{
		ID:       id,
		Status:   status,
		Amount:   int64(amount),
		Currency: currency,
	}, nil
}
