// Package ratetable holds the immutable nightly rate reference data: room types, their base
// rates and inventory, their seasonal multipliers and the process wide tax rate.
//
// A Table is built once at startup and shared by reference. It has no setters; every slice it
// hands out is a copy.
package ratetable

import (
	"errors"
	"fmt"
	"hotel/shared/timezone"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxGuestsLimit = 8
)

var (
	ErrUnknownRoomType = errors.New("unknown room type")

	MinMultiplier = decimal.NewFromFloat(0.1)
	MaxMultiplier = decimal.NewFromInt(5)
)

// SeasonalPeriod multiplies the base rate on every calendar day between StartDate and EndDate, both inclusive.
type SeasonalPeriod struct {
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Multiplier decimal.Decimal
}

// Contains reports whether the calendar day of date falls inside the period.
func (p SeasonalPeriod) Contains(date time.Time) bool {
	day := timezone.Date(date)

	return !day.Before(timezone.Date(p.StartDate)) && !day.After(timezone.Date(p.EndDate))
}

type RoomType struct {
	Code           string
	Name           string
	Description    string
	BaseRate       decimal.Decimal
	MaxGuests      int
	TotalInventory int
	Seasons        []SeasonalPeriod
}

func (r RoomType) clone() RoomType {
	r.Seasons = append([]SeasonalPeriod(nil), r.Seasons...)

	return r
}

type Table struct {
	taxRate   decimal.Decimal
	roomTypes map[string]RoomType
	ordered   []string
}

// New validates the reference data and freezes it into a Table.
func New(taxRate decimal.Decimal, roomTypes []RoomType) (*Table, error) {
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative, got %s", taxRate)
	}

	table := &Table{
		taxRate:   taxRate,
		roomTypes: make(map[string]RoomType, len(roomTypes)),
		ordered:   make([]string, 0, len(roomTypes)),
	}

	for _, roomType := range roomTypes {
		if err := validate(roomType); err != nil {
			return nil, err
		}

		if _, ok := table.roomTypes[roomType.Code]; ok {
			return nil, fmt.Errorf("duplicate room type %q", roomType.Code)
		}

		table.roomTypes[roomType.Code] = roomType.clone()
		table.ordered = append(table.ordered, roomType.Code)
	}

	sort.SliceStable(table.ordered, func(i, j int) bool {
		return table.roomTypes[table.ordered[i]].BaseRate.LessThan(table.roomTypes[table.ordered[j]].BaseRate)
	})

	return table, nil
}

func validate(roomType RoomType) error {
	switch {
	case roomType.Code == "":
		return errors.New("room type code is required")
	case !roomType.BaseRate.IsPositive():
		return fmt.Errorf("room type %q: base rate must be positive", roomType.Code)
	case roomType.TotalInventory < 1:
		return fmt.Errorf("room type %q: inventory must be at least 1", roomType.Code)
	case roomType.MaxGuests < 1 || roomType.MaxGuests > MaxGuestsLimit:
		return fmt.Errorf("room type %q: max guests must be between 1 and %d", roomType.Code, MaxGuestsLimit)
	}

	for _, season := range roomType.Seasons {
		if season.Multiplier.LessThan(MinMultiplier) || season.Multiplier.GreaterThan(MaxMultiplier) {
			return fmt.Errorf("room type %q: season %q multiplier %s outside [%s, %s]",
				roomType.Code, season.Name, season.Multiplier, MinMultiplier, MaxMultiplier)
		}

		if timezone.Date(season.EndDate).Before(timezone.Date(season.StartDate)) {
			return fmt.Errorf("room type %q: season %q ends before it starts", roomType.Code, season.Name)
		}
	}

	return nil
}

// RateForNight returns the unrounded rate for the night starting on date. The first season, in
// definition order, that contains the date wins; overlapping seasons never stack.
func (t *Table) RateForNight(code string, date time.Time) (decimal.Decimal, error) {
	roomType, ok := t.roomTypes[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownRoomType, code)
	}

	for _, season := range roomType.Seasons {
		if season.Contains(date) {
			return roomType.BaseRate.Mul(season.Multiplier), nil
		}
	}

	return roomType.BaseRate, nil
}

func (t *Table) RoomType(code string) (RoomType, bool) {
	roomType, ok := t.roomTypes[code]
	if !ok {
		return RoomType{}, false
	}

	return roomType.clone(), true
}

// RoomTypes lists every room type, cheapest first.
func (t *Table) RoomTypes() []RoomType {
	result := make([]RoomType, 0, len(t.ordered))

	for _, code := range t.ordered {
		result = append(result, t.roomTypes[code].clone())
	}

	return result
}

func (t *Table) Codes() []string {
	return append([]string(nil), t.ordered...)
}

func (t *Table) Inventory(code string) int {
	return t.roomTypes[code].TotalInventory
}

func (t *Table) TaxRate() decimal.Decimal {
	return t.taxRate
}
