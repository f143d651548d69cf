package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/constant"
)

const (
	EntityName = "notification"

	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingConfirmed = "booking.confirmed"
)

// BookingEvent is the payload published on the notification topic. It carries everything the
// e-mail needs so the consumer never reads the reservation store.
type BookingEvent struct {
	Type             string `json:"type"`
	ReservationID    string `json:"reservation_id"`
	ConfirmationCode string `json:"confirmation_code"`
	GuestName        string `json:"guest_name"`
	Email            string `json:"email"`
	RoomType         string `json:"room_type"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Nights           int    `json:"nights"`
	GuestCount       int    `json:"guest_count"`
	NightlyRate      string `json:"nightly_rate"`
	Subtotal         string `json:"subtotal"`
	Taxes            string `json:"taxes"`
	Total            string `json:"total"`
	SpecialRequests  string `json:"special_requests,omitempty"`
}

func NewBookingEvent(eventType string, reservation bookingModel.Reservation) BookingEvent {
	return BookingEvent{
		Type:             eventType,
		ReservationID:    reservation.ID,
		ConfirmationCode: reservation.ConfirmationCode,
		GuestName:        reservation.GuestName(),
		Email:            reservation.Email,
		RoomType:         reservation.RoomType,
		CheckIn:          reservation.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOut:         reservation.CheckOutDate.Format(constant.DateOnlyFormat),
		Nights:           reservation.Nights,
		GuestCount:       reservation.GuestCount,
		NightlyRate:      reservation.NightlyRate.StringFixed(2),
		Subtotal:         reservation.Subtotal.StringFixed(2),
		Taxes:            reservation.Taxes.StringFixed(2),
		Total:            reservation.TotalAmount.StringFixed(2),
		SpecialRequests:  reservation.SpecialRequests,
	}
}
