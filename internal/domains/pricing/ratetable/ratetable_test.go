package ratetable_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/pricing/ratetable"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	valid := ratetable.DefaultRoomTypes()[0]

	tests := []struct {
		name    string
		mutate  func(r *ratetable.RoomType)
		taxRate decimal.Decimal
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(*ratetable.RoomType) {},
			taxRate: decimal.NewFromFloat(0.16),
		},
		{
			name:    "negative tax rate",
			mutate:  func(*ratetable.RoomType) {},
			taxRate: decimal.NewFromFloat(-0.1),
			wantErr: true,
		},
		{
			name:    "zero base rate",
			mutate:  func(r *ratetable.RoomType) { r.BaseRate = decimal.Zero },
			wantErr: true,
		},
		{
			name:    "no inventory",
			mutate:  func(r *ratetable.RoomType) { r.TotalInventory = 0 },
			wantErr: true,
		},
		{
			name:    "too many guests",
			mutate:  func(r *ratetable.RoomType) { r.MaxGuests = 9 },
			wantErr: true,
		},
		{
			name: "multiplier above range",
			mutate: func(r *ratetable.RoomType) {
				r.Seasons = []ratetable.SeasonalPeriod{{Name: "x", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2), Multiplier: decimal.NewFromFloat(5.1)}}
			},
			wantErr: true,
		},
		{
			name: "multiplier below range",
			mutate: func(r *ratetable.RoomType) {
				r.Seasons = []ratetable.SeasonalPeriod{{Name: "x", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2), Multiplier: decimal.NewFromFloat(0.09)}}
			},
			wantErr: true,
		},
		{
			name: "season ends before start",
			mutate: func(r *ratetable.RoomType) {
				r.Seasons = []ratetable.SeasonalPeriod{{Name: "x", StartDate: day(2025, 1, 2), EndDate: day(2025, 1, 1), Multiplier: decimal.NewFromInt(2)}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomType := valid
			tt.mutate(&roomType)

			_, err := ratetable.New(tt.taxRate, []ratetable.RoomType{roomType})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_Duplicate(t *testing.T) {
	roomType := ratetable.DefaultRoomTypes()[0]

	_, err := ratetable.New(decimal.Zero, []ratetable.RoomType{roomType, roomType})

	assert.Error(t, err)
}

func TestTable_RateForNight(t *testing.T) {
	roomTypes := ratetable.DefaultRoomTypes()
	roomTypes[2].Seasons = []ratetable.SeasonalPeriod{
		{Name: "Peak", StartDate: day(2025, 8, 1), EndDate: day(2025, 8, 31), Multiplier: decimal.NewFromFloat(1.5)},
		{Name: "Late August", StartDate: day(2025, 8, 20), EndDate: day(2025, 9, 10), Multiplier: decimal.NewFromInt(2)},
	}

	table, err := ratetable.New(decimal.NewFromFloat(0.16), roomTypes)
	require.NoError(t, err)

	tests := []struct {
		name     string
		roomType string
		date     time.Time
		want     string
		wantErr  error
	}{
		{name: "base rate outside seasons", roomType: "presidential-villa", date: day(2025, 7, 31), want: "650"},
		{name: "season start is inclusive", roomType: "presidential-villa", date: day(2025, 8, 1), want: "975"},
		{name: "season end is inclusive", roomType: "presidential-villa", date: day(2025, 8, 31), want: "975"},
		{name: "first matching season wins", roomType: "presidential-villa", date: day(2025, 8, 25), want: "975"},
		{name: "second season after first ends", roomType: "presidential-villa", date: day(2025, 9, 1), want: "1300"},
		{name: "clock time ignored", roomType: "presidential-villa", date: time.Date(2025, 8, 31, 22, 0, 0, 0, time.UTC), want: "975"},
		{name: "room without seasons", roomType: "ocean-view", date: day(2025, 8, 15), want: "180"},
		{name: "unknown room type", roomType: "penthouse", date: day(2025, 8, 15), wantErr: ratetable.ErrUnknownRoomType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := table.RateForNight(tt.roomType, tt.date)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(rate), "got %s", rate)
		})
	}
}

func TestTable_Immutable(t *testing.T) {
	roomTypes := ratetable.DefaultRoomTypes()
	roomTypes[0].Seasons = []ratetable.SeasonalPeriod{
		{Name: "Peak", StartDate: day(2025, 8, 1), EndDate: day(2025, 8, 31), Multiplier: decimal.NewFromInt(2)},
	}

	table, err := ratetable.New(decimal.NewFromFloat(0.16), roomTypes)
	require.NoError(t, err)

	roomTypes[0].Seasons[0].Multiplier = decimal.NewFromInt(5)

	listed, ok := table.RoomType("ocean-view")
	require.True(t, ok)

	listed.Seasons[0].Multiplier = decimal.NewFromInt(4)

	rate, err := table.RateForNight("ocean-view", day(2025, 8, 10))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(360).Equal(rate))
}

func TestTable_RoomTypes(t *testing.T) {
	roomTypes := ratetable.DefaultRoomTypes()
	roomTypes[0], roomTypes[2] = roomTypes[2], roomTypes[0]

	table, err := ratetable.New(decimal.NewFromFloat(0.16), roomTypes)
	require.NoError(t, err)

	assert.Equal(t, []string{"ocean-view", "beachfront-suite", "presidential-villa"}, table.Codes())
	assert.Len(t, table.RoomTypes(), 3)
	assert.Equal(t, 2, table.Inventory("presidential-villa"))
	assert.Equal(t, 0, table.Inventory("penthouse"))
	assert.True(t, decimal.NewFromFloat(0.16).Equal(table.TaxRate()))

	_, ok := table.RoomType("penthouse")
	assert.False(t, ok)
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{year: 2024, want: day(2024, 3, 31)},
		{year: 2025, want: day(2025, 4, 20)},
		{year: 2026, want: day(2026, 4, 5)},
		{year: 2038, want: day(2038, 4, 25)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ratetable.EasterSunday(tt.year), "year %d", tt.year)
	}
}

func TestDefaultSeasons(t *testing.T) {
	seasons := ratetable.DefaultSeasons(2025)
	require.Len(t, seasons, 3)

	roomTypes := ratetable.DefaultRoomTypes()
	roomTypes[0].Seasons = seasons

	table, err := ratetable.New(decimal.NewFromFloat(0.16), roomTypes)
	require.NoError(t, err)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "holiday in december", date: day(2025, 12, 24), want: "270"},
		{name: "holiday spills into january", date: day(2026, 1, 15), want: "270"},
		{name: "easter week", date: day(2025, 4, 14), want: "234"},
		{name: "summer peak", date: day(2025, 7, 1), want: "216"},
		{name: "shoulder season", date: day(2025, 10, 1), want: "180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := table.RateForNight("ocean-view", tt.date)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(rate), "got %s", rate)
		})
	}
}
