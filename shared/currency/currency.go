// Package currency converts canonical USD amounts for display and payment collection.
// Conversion never feeds back into pricing: the USD total stored on a reservation is authoritative.
package currency

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Base = "USD"

	minorUnitExponent = 2
)

var rates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"COP": decimal.NewFromInt(4200),
	"EUR": decimal.RequireFromString("0.85"),
	"GBP": decimal.RequireFromString("0.75"),
	"CAD": decimal.RequireFromString("1.25"),
	"MXN": decimal.RequireFromString("18.5"),
	"BRL": decimal.RequireFromString("5.2"),
	"ARS": decimal.NewFromInt(350),
}

// ErrUnsupported is returned for currency codes without a configured rate.
var ErrUnsupported = errors.New("unsupported currency")

// Normalize upper-cases the code and defaults an empty code to the base currency.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Base
	}

	return code
}

// Supported lists the accepted currency codes in alphabetical order.
func Supported() []string {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	return codes
}

// Rate returns how many units of code one USD buys.
func Rate(code string) (decimal.Decimal, error) {
	rate, ok := rates[Normalize(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupported, code)
	}

	return rate, nil
}

// Convert turns a USD amount into code, rounded half-up to cents.
func Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	rate, err := Rate(code)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(rate).Round(minorUnitExponent), nil
}

// ToMinorUnits expresses an amount in the smallest unit of the currency, e.g. cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitExponent).Round(0).IntPart()
}
