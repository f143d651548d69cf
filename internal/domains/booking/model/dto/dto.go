package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
)

type CreateReservationRequest struct {
	FirstName       string `json:"first_name"       validate:"required,max=50"`
	LastName        string `json:"last_name"        validate:"required,max=50"`
	Email           string `json:"email"            validate:"required,email,max=100"`
	Phone           string `json:"phone"            validate:"omitempty,e164"`
	CheckIn         string `json:"check_in"         validate:"required,isodate"`
	CheckOut        string `json:"check_out"        validate:"required,isodate"`
	RoomType        string `json:"room_type"        validate:"required,roomtype,max=50"`
	GuestCount      int    `json:"guest_count"      validate:"required,gte=1,lte=8"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
}

func (c *CreateReservationRequest) Guest() model.Guest {
	return model.Guest{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// UpdateReservationRequest lists the only fields an existing reservation accepts. Dates, room
// type and pricing are fixed at creation; changing them means cancelling and booking again.
type UpdateReservationRequest struct {
	FirstName       string `db:"first_name"       json:"first_name"       validate:"omitempty,max=50"`
	LastName        string `db:"last_name"        json:"last_name"        validate:"omitempty,max=50"`
	Email           string `db:"email"            json:"email"            validate:"omitempty,email,max=100"`
	Phone           string `db:"phone"            json:"phone"            validate:"omitempty,e164"`
	SpecialRequests string `db:"special_requests" json:"special_requests" validate:"omitempty,max=500"`
	Status          string `db:"status"           json:"status"           validate:"omitempty,oneof=pending confirmed cancelled completed no-show"`
	Notes           string `db:"notes"            json:"notes"            validate:"omitempty,max=1000"`
}

type CreateReservationResponse struct {
	ConfirmationCode string              `json:"confirmation_code"`
	Reservation      ReservationResponse `json:"reservation"`
}

type ReservationResponse struct {
	ID               string  `json:"id"`
	ConfirmationCode string  `json:"confirmation_code"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Nights           int     `json:"nights"`
	RoomType         string  `json:"room_type"`
	GuestCount       int     `json:"guest_count"`
	SpecialRequests  string  `json:"special_requests"`
	NightlyRate      string  `json:"nightly_rate"`
	Subtotal         string  `json:"subtotal"`
	Taxes            string  `json:"taxes"`
	TotalAmount      string  `json:"total_amount"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentIntentID  string  `json:"payment_intent_id,omitempty"`
	PaidAt           *string `json:"paid_at,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	Source           string  `json:"source"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.ConfirmationCode = model.ConfirmationCode
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Phone = model.Phone
	r.CheckIn = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights
	r.RoomType = model.RoomType
	r.GuestCount = model.GuestCount
	r.SpecialRequests = model.SpecialRequests
	r.NightlyRate = model.NightlyRate.StringFixed(2)
	r.Subtotal = model.Subtotal.StringFixed(2)
	r.Taxes = model.Taxes.StringFixed(2)
	r.TotalAmount = model.TotalAmount.StringFixed(2)
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.Notes = model.Notes
	r.Source = model.Source

	if model.PaymentIntentID != nil {
		r.PaymentIntentID = *model.PaymentIntentID
	}

	if model.PaidAt != nil {
		paidAt := timezone.Format(*model.PaidAt, constant.DateFormat)
		r.PaidAt = &paidAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
