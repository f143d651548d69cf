package ratetable

import (
	"time"

	"github.com/shopspring/decimal"
)

const easterWindowDays = 7

// DefaultSeasons returns the stock seasonal calendar for a year, highest priority first:
// the holiday season that starts in December of that year, Easter week and the summer peak.
func DefaultSeasons(year int) []SeasonalPeriod {
	easter := EasterSunday(year)

	return []SeasonalPeriod{
		{
			Name:       "Holiday Season",
			StartDate:  time.Date(year, time.December, 15, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(year+1, time.January, 15, 0, 0, 0, 0, time.UTC),
			Multiplier: decimal.NewFromFloat(1.5),
		},
		{
			Name:       "Easter Week",
			StartDate:  easter.AddDate(0, 0, -easterWindowDays),
			EndDate:    easter.AddDate(0, 0, easterWindowDays),
			Multiplier: decimal.NewFromFloat(1.3),
		},
		{
			Name:       "Summer Peak",
			StartDate:  time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(year, time.August, 15, 0, 0, 0, 0, time.UTC),
			Multiplier: decimal.NewFromFloat(1.2),
		},
	}
}

// EasterSunday computes Western Easter with the anonymous Gregorian algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DefaultRoomTypes returns the stock catalogue without seasons.
func DefaultRoomTypes() []RoomType {
	return []RoomType{
		{
			Code:           "ocean-view",
			Name:           "Ocean View Room",
			Description:    "Wake up to the sound of waves with a private balcony facing the sea.",
			BaseRate:       decimal.NewFromInt(180),
			MaxGuests:      2,
			TotalInventory: 10,
		},
		{
			Code:           "beachfront-suite",
			Name:           "Beachfront Suite",
			Description:    "Step straight onto the sand from a spacious suite with a separate living area.",
			BaseRate:       decimal.NewFromInt(350),
			MaxGuests:      4,
			TotalInventory: 5,
		},
		{
			Code:           "presidential-villa",
			Name:           "Presidential Villa",
			Description:    "A private villa with plunge pool, butler service and panoramic views.",
			BaseRate:       decimal.NewFromInt(650),
			MaxGuests:      8,
			TotalInventory: 2,
		},
	}
}
