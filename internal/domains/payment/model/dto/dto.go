package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

type CreateIntentRequest struct {
	ReservationID    string `json:"reservation_id"    validate:"required_without=ConfirmationCode,omitempty,uuid"`
	ConfirmationCode string `json:"confirmation_code" validate:"required_without=ReservationID,omitempty,max=20"`
	Currency         string `json:"currency"          validate:"omitempty,len=3"`
}

type IntentResponse struct {
	IntentID         string `json:"intent_id"`
	ConfirmationCode string `json:"confirmation_code"`
	KeyID            string `json:"key_id"`
	Currency         string `json:"currency"`
	Amount           string `json:"amount"`
	AmountMinor      int64  `json:"amount_minor"`
	TotalUSD         string `json:"total_usd"`
}

type ConfirmRequest struct {
	IntentID string `json:"intent_id" validate:"required,max=100"`
}

type StatusResponse struct {
	ConfirmationCode string  `json:"confirmation_code"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentIntentID  string  `json:"payment_intent_id,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	TotalAmount      string  `json:"total_amount"`
	PaidAt           *string `json:"paid_at,omitempty"`
}

func (r *StatusResponse) FromModel(reservation bookingModel.Reservation) {
	r.ConfirmationCode = reservation.ConfirmationCode
	r.Status = reservation.Status
	r.PaymentStatus = reservation.PaymentStatus
	r.Currency = reservation.PaymentCurrency
	r.TotalAmount = reservation.TotalAmount.StringFixed(2)

	if reservation.PaymentIntentID != nil {
		r.PaymentIntentID = *reservation.PaymentIntentID
	}

	if reservation.PaidAt != nil {
		paidAt := timezone.Format(*reservation.PaidAt, constant.DateFormat)
		r.PaidAt = &paidAt
	}
}

type WebhookResponse struct {
	Event    string `json:"event"`
	IntentID string `json:"intent_id,omitempty"`
	Handled  bool   `json:"handled"`
}
