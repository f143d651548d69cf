package model

import (
	"crypto/rand"
	"fmt"
	pricingModel "hotel/internal/domains/pricing/model"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID               = "id"
	FieldConfirmationCode = "confirmation_code"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldNights           = "nights"
	FieldRoomType         = "room_type"
	FieldGuestCount       = "guest_count"
	FieldSpecialRequests  = "special_requests"
	FieldTotalAmount      = "total_amount"
	FieldStatus           = "status"
	FieldPaymentStatus    = "payment_status"
	FieldPaymentIntentID  = "payment_intent_id"
	FieldPaymentCurrency  = "payment_currency"
	FieldPaidAt           = "paid_at"
	FieldNotes            = "notes"
	FieldSource           = "source"
	FieldCreatedAt        = "created_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no-show"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"

	SourceGuest  = "guest"
	SourceAdmin  = "admin"
	SourceSystem = "system"

	DefaultCodePrefix = "CC"
	CodeLength        = 10
)

// crockford is Crockford's base32 alphabet: no I, L, O or U, so codes survive being read over the phone.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ActiveStatuses hold inventory. Every other status releases the room.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

type Reservation struct {
	ID               string          `db:"id"`
	ConfirmationCode string          `db:"confirmation_code"`
	FirstName        string          `db:"first_name"`
	LastName         string          `db:"last_name"`
	Email            string          `db:"email"`
	Phone            string          `db:"phone"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	Nights           int             `db:"nights"`
	RoomType         string          `db:"room_type"`
	GuestCount       int             `db:"guest_count"`
	SpecialRequests  string          `db:"special_requests"`
	NightlyRate      decimal.Decimal `db:"nightly_rate"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	Taxes            decimal.Decimal `db:"taxes"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	Status           string          `db:"status"`
	PaymentStatus    string          `db:"payment_status"`
	PaymentIntentID  *string         `db:"payment_intent_id"`
	PaymentCurrency  string          `db:"payment_currency"`
	PaidAt           *time.Time      `db:"paid_at"`
	Notes            string          `db:"notes"`
	Source           string          `db:"source"`
	model.Metadata
}

func (r Reservation) GuestName() string {
	return r.FirstName + " " + r.LastName
}

func (r Reservation) IsActive() bool {
	return IsActiveStatus(r.Status)
}

func (r Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusNoShow
}

// Overlaps uses half-open ranges: a stay ending on D does not collide with one starting on D.
func (r Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckInDate.Before(to) && r.CheckOutDate.After(from)
}

func IsActiveStatus(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

type Guest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type NewReservationParams struct {
	Guest           Guest
	GuestCount      int
	SpecialRequests string
	Source          string
	Actor           string
}

// NewReservation builds a pending reservation from a priced quote. Derived fields and the
// confirmation code are fixed here, before the value is ever handed to the store.
func NewReservation(params NewReservationParams, quote pricingModel.Quote, code string) Reservation {
	now := timezone.Now()

	source := params.Source
	if source == "" {
		source = SourceGuest
	}

	return Reservation{
		ID:               uuid.NewString(),
		ConfirmationCode: code,
		FirstName:        params.Guest.FirstName,
		LastName:         params.Guest.LastName,
		Email:            params.Guest.Email,
		Phone:            params.Guest.Phone,
		CheckInDate:      quote.CheckIn,
		CheckOutDate:     quote.CheckOut,
		Nights:           pricingModel.CountNights(quote.CheckIn, quote.CheckOut),
		RoomType:         quote.RoomType,
		GuestCount:       params.GuestCount,
		SpecialRequests:  params.SpecialRequests,
		NightlyRate:      quote.NightlyRate,
		Subtotal:         quote.Subtotal,
		Taxes:            quote.Taxes,
		TotalAmount:      quote.Total,
		Status:           StatusPending,
		PaymentStatus:    PaymentPending,
		Source:           source,
		Metadata:         model.NewMetadata(params.Actor, now),
	}
}

// GenerateConfirmationCode returns prefix followed by CodeLength random Crockford base32 characters.
func GenerateConfirmationCode(prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}

	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, CodeLength)
	for i, b := range buf {
		code[i] = crockford[b&0x1f]
	}

	return prefix + string(code), nil
}
