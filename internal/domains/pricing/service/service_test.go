package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/pricing/model"
	"hotel/internal/domains/pricing/model/dto"
	"hotel/internal/domains/pricing/ratetable"
	"hotel/internal/domains/pricing/service"
	"hotel/shared/failure"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T, seasons map[string][]ratetable.SeasonalPeriod) service.Pricing {
	t.Helper()

	roomTypes := ratetable.DefaultRoomTypes()
	for i := range roomTypes {
		roomTypes[i].Seasons = seasons[roomTypes[i].Code]
	}

	table, err := ratetable.New(decimal.NewFromFloat(0.16), roomTypes)
	require.NoError(t, err)

	return service.New(table, &config.Config{}, mocks.NewOtel())
}

func TestPricingService_Price(t *testing.T) {
	svc := newService(t, map[string][]ratetable.SeasonalPeriod{
		"presidential-villa": {
			{Name: "Holiday", StartDate: day(2025, 12, 15), EndDate: day(2026, 1, 15), Multiplier: decimal.NewFromFloat(1.5)},
		},
		"beachfront-suite": {
			{Name: "Summer Peak", StartDate: day(2025, 6, 15), EndDate: day(2025, 8, 15), Multiplier: decimal.NewFromFloat(1.2)},
		},
	})

	tests := []struct {
		name        string
		roomType    string
		checkIn     time.Time
		checkOut    time.Time
		nights      int
		nightlyRate string
		subtotal    string
		taxes       string
		total       string
	}{
		{
			name:        "ocean view two nights without season",
			roomType:    "ocean-view",
			checkIn:     day(2025, 8, 15),
			checkOut:    day(2025, 8, 17),
			nights:      2,
			nightlyRate: "180",
			subtotal:    "360.00",
			taxes:       "57.60",
			total:       "417.60",
		},
		{
			name:        "season covering the whole stay",
			roomType:    "presidential-villa",
			checkIn:     day(2025, 12, 20),
			checkOut:    day(2025, 12, 23),
			nights:      3,
			nightlyRate: "975",
			subtotal:    "2925.00",
			taxes:       "468.00",
			total:       "3393.00",
		},
		{
			name:        "stay straddling the season end",
			roomType:    "beachfront-suite",
			checkIn:     day(2025, 8, 14),
			checkOut:    day(2025, 8, 18),
			nights:      4,
			nightlyRate: "420",
			subtotal:    "1540.00",
			taxes:       "246.40",
			total:       "1786.40",
		},
		{
			name:        "partial day rounds up to a night",
			roomType:    "ocean-view",
			checkIn:     day(2025, 9, 1),
			checkOut:    day(2025, 9, 2).Add(3 * time.Hour),
			nights:      2,
			nightlyRate: "180",
			subtotal:    "360.00",
			taxes:       "57.60",
			total:       "417.60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Price(context.Background(), tt.roomType, tt.checkIn, tt.checkOut)
			require.NoError(t, err)

			assert.Equal(t, tt.nights, quote.Nights)
			assert.Len(t, quote.Nightly, tt.nights)
			assert.Equal(t, tt.nightlyRate, quote.NightlyRate.String())
			assert.Equal(t, tt.subtotal, dto.Money(quote.Subtotal))
			assert.Equal(t, tt.taxes, dto.Money(quote.Taxes))
			assert.Equal(t, tt.total, dto.Money(quote.Total))
			assert.True(t, quote.Total.Equal(quote.Subtotal.Add(quote.Taxes)))
		})
	}
}

func TestPricingService_Price_SeasonalNights(t *testing.T) {
	svc := newService(t, map[string][]ratetable.SeasonalPeriod{
		"presidential-villa": {
			{Name: "Peak", StartDate: day(2025, 8, 1), EndDate: day(2025, 8, 31), Multiplier: decimal.NewFromFloat(1.5)},
		},
	})

	quote, err := svc.Price(context.Background(), "presidential-villa", day(2025, 8, 10), day(2025, 8, 15))
	require.NoError(t, err)

	for _, night := range quote.Nightly {
		assert.True(t, decimal.NewFromInt(975).Equal(night.Rate), "night %s priced %s", night.Date, night.Rate)
	}
}

func TestPricingService_Price_NightCountMatchesIterations(t *testing.T) {
	svc := newService(t, nil)
	checkIn := day(2025, 3, 1)

	for offset := 1; offset <= 30; offset++ {
		checkOut := checkIn.AddDate(0, 0, offset)

		quote, err := svc.Price(context.Background(), "ocean-view", checkIn, checkOut)
		require.NoError(t, err)

		assert.Equal(t, model.CountNights(checkIn, checkOut), quote.Nights)
		assert.Len(t, quote.Nightly, quote.Nights)
		assert.Equal(t, checkOut, quote.CheckOut)
	}
}

func TestPricingService_Price_Validation(t *testing.T) {
	svc := newService(t, nil)

	tests := []struct {
		name     string
		roomType string
		checkIn  time.Time
		checkOut time.Time
		wantErr  bool
	}{
		{name: "thirty nights accepted", roomType: "ocean-view", checkIn: day(2025, 9, 1), checkOut: day(2025, 10, 1)},
		{name: "thirty one nights rejected", roomType: "ocean-view", checkIn: day(2025, 9, 1), checkOut: day(2025, 10, 2), wantErr: true},
		{name: "thirty one nights rejected for villa", roomType: "presidential-villa", checkIn: day(2025, 9, 1), checkOut: day(2025, 10, 2), wantErr: true},
		{name: "zero nights rejected", roomType: "ocean-view", checkIn: day(2025, 9, 1), checkOut: day(2025, 9, 1), wantErr: true},
		{name: "reversed dates rejected", roomType: "ocean-view", checkIn: day(2025, 9, 5), checkOut: day(2025, 9, 1), wantErr: true},
		{name: "unknown room type rejected", roomType: "penthouse", checkIn: day(2025, 9, 1), checkOut: day(2025, 9, 3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Price(context.Background(), tt.roomType, tt.checkIn, tt.checkOut)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, failure.CategoryValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPricingService_Quote(t *testing.T) {
	svc := newService(t, nil)

	tests := []struct {
		name      string
		req       dto.QuoteRequest
		wantErr   bool
		total     string
		converted string
	}{
		{
			name:  "usd quote",
			req:   dto.QuoteRequest{RoomType: "ocean-view", CheckIn: "2025-08-15", CheckOut: "2025-08-17"},
			total: "417.60",
		},
		{
			name:      "converted total only",
			req:       dto.QuoteRequest{RoomType: "ocean-view", CheckIn: "2025-08-15", CheckOut: "2025-08-17", Currency: "eur"},
			total:     "417.60",
			converted: "354.96",
		},
		{
			name:    "unsupported currency",
			req:     dto.QuoteRequest{RoomType: "ocean-view", CheckIn: "2025-08-15", CheckOut: "2025-08-17", Currency: "XXX"},
			wantErr: true,
		},
		{
			name:    "malformed dates",
			req:     dto.QuoteRequest{RoomType: "ocean-view", CheckIn: "15/08/2025", CheckOut: "2025-02-30"},
			wantErr: true,
		},
		{
			name:    "checkout before checkin",
			req:     dto.QuoteRequest{RoomType: "ocean-view", CheckIn: "2025-08-17", CheckOut: "2025-08-15"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Quote(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, "USD", res.Currency)

			if tt.converted == "" {
				assert.Nil(t, res.Converted)
			} else {
				require.NotNil(t, res.Converted)
				assert.Equal(t, tt.converted, res.Converted.Total)
			}
		})
	}
}

func TestParseStay_ReportsEveryField(t *testing.T) {
	_, _, err := service.ParseStay("bad", "worse")

	require.Error(t, err)
	assert.Len(t, failure.GetDetails(err), 2)
}

func TestPricingService_MaxNights(t *testing.T) {
	table, err := ratetable.New(decimal.Zero, ratetable.DefaultRoomTypes())
	require.NoError(t, err)

	cfg := &config.Config{}
	assert.Equal(t, 30, service.New(table, cfg, mocks.NewOtel()).MaxNights())

	cfg.Booking.MaxNights = 14
	assert.Equal(t, 14, service.New(table, cfg, mocks.NewOtel()).MaxNights())

	cfg.Booking.MaxNights = 45
	svc := service.New(table, cfg, mocks.NewOtel())
	assert.Equal(t, model.DefaultMaxNights, svc.MaxNights())

	_, err = svc.Price(context.Background(), "ocean-view", day(2025, 9, 1), day(2025, 10, 2))
	require.Error(t, err)
	assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))

	_, err = svc.Price(context.Background(), "ocean-view", day(2025, 9, 1), day(2025, 10, 1))
	require.NoError(t, err)
}
