package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EntityName = "quote"

	DefaultMaxNights = 30

	// MoneyPlaces is the number of decimal places money is rounded to on output.
	MoneyPlaces = 2
)

type NightRate struct {
	Date time.Time
	Rate decimal.Decimal
}

// Quote is a priced stay. NightlyRate is the first night's rate. Subtotal, Taxes and Total are
// rounded to cents and Total is always Subtotal + Taxes.
type Quote struct {
	RoomType    string
	CheckIn     time.Time
	CheckOut    time.Time
	Nights      int
	NightlyRate decimal.Decimal
	Subtotal    decimal.Decimal
	Taxes       decimal.Decimal
	Total       decimal.Decimal
	TaxRate     decimal.Decimal
	Nightly     []NightRate
}

// CountNights returns ceil((checkOut - checkIn) / 1 day). It is zero or negative when checkOut is not after checkIn.
func CountNights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return int(diff / (24 * time.Hour))
	}

	return int(math.Ceil(diff.Hours() / 24)) //nolint:mnd
}
