package model_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/booking/model"
	pricingModel "hotel/internal/domains/pricing/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateConfirmationCode(t *testing.T) {
	format := regexp.MustCompile(`^CC[0-9A-HJKMNP-TV-Z]{10}$`)
	seen := make(map[string]struct{}, 10000)

	for range 10000 {
		code, err := model.GenerateConfirmationCode("")
		require.NoError(t, err)
		require.Regexp(t, format, code)

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %s", code)

		seen[code] = struct{}{}
	}

	assert.Len(t, seen, 10000)
}

func TestGenerateConfirmationCode_Prefix(t *testing.T) {
	code, err := model.GenerateConfirmationCode("HB")
	require.NoError(t, err)

	assert.Len(t, code, 12)
	assert.Equal(t, "HB", code[:2])
}

func TestNewReservation(t *testing.T) {
	quote := pricingModel.Quote{
		RoomType:    "ocean-view",
		CheckIn:     day(2025, 8, 15),
		CheckOut:    day(2025, 8, 17),
		Nights:      2,
		NightlyRate: decimal.NewFromInt(180),
		Subtotal:    decimal.RequireFromString("360.00"),
		Taxes:       decimal.RequireFromString("57.60"),
		Total:       decimal.RequireFromString("417.60"),
	}

	reservation := model.NewReservation(model.NewReservationParams{
		Guest:      model.Guest{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", Phone: "+573001112233"},
		GuestCount: 2,
		Actor:      "ana@example.com",
	}, quote, "CCABCDEFGHJK")

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "CCABCDEFGHJK", reservation.ConfirmationCode)
	assert.Equal(t, 2, reservation.Nights)
	assert.Equal(t, model.StatusPending, reservation.Status)
	assert.Equal(t, model.PaymentPending, reservation.PaymentStatus)
	assert.Equal(t, model.SourceGuest, reservation.Source)
	assert.Equal(t, "Ana Lopez", reservation.GuestName())
	assert.True(t, reservation.TotalAmount.Equal(reservation.Subtotal.Add(reservation.Taxes)))
	assert.Nil(t, reservation.PaymentIntentID)
	assert.True(t, reservation.IsActive())
}

func TestReservation_Overlaps(t *testing.T) {
	existing := model.Reservation{CheckInDate: day(2025, 8, 15), CheckOutDate: day(2025, 8, 17)}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want bool
	}{
		{name: "adjacent after", from: day(2025, 8, 17), to: day(2025, 8, 19), want: false},
		{name: "adjacent before", from: day(2025, 8, 13), to: day(2025, 8, 15), want: false},
		{name: "same range", from: day(2025, 8, 15), to: day(2025, 8, 17), want: true},
		{name: "last night shared", from: day(2025, 8, 16), to: day(2025, 8, 18), want: true},
		{name: "enclosing", from: day(2025, 8, 1), to: day(2025, 8, 30), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.from, tt.to))
		})
	}
}

func TestReservation_Status(t *testing.T) {
	tests := []struct {
		status   string
		active   bool
		terminal bool
	}{
		{status: model.StatusPending, active: true},
		{status: model.StatusConfirmed, active: true},
		{status: model.StatusCancelled},
		{status: model.StatusCompleted, terminal: true},
		{status: model.StatusNoShow, terminal: true},
	}

	for _, tt := range tests {
		reservation := model.Reservation{Status: tt.status}

		assert.Equal(t, tt.active, reservation.IsActive(), tt.status)
		assert.Equal(t, tt.terminal, reservation.IsTerminal(), tt.status)
	}
}
