package model

import (
	"hotel/internal/domains/pricing/ratetable"
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID             = "id"
	FieldCode           = "code"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldBaseRate       = "base_rate"
	FieldMaxGuests      = "max_guests"
	FieldTotalInventory = "total_inventory"
	FieldImage          = "image"
	FieldActive         = "active"
)

const (
	SeasonTableName  = "seasonal_periods"
	SeasonEntityName = "seasonal period"

	FieldRoomTypeCode = "room_type_code"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldMultiplier   = "multiplier"
	FieldPriority     = "priority"
)

type RoomType struct {
	ID             string          `db:"id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	BaseRate       decimal.Decimal `db:"base_rate"`
	MaxGuests      int             `db:"max_guests"`
	TotalInventory int             `db:"total_inventory"`
	Image          string          `db:"image"`
	Active         bool            `db:"active"`
	model.Metadata
}

// SeasonalPeriod rows without a room type code apply to every room type.
type SeasonalPeriod struct {
	ID           string          `db:"id"`
	RoomTypeCode *string         `db:"room_type_code"`
	Name         string          `db:"name"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	Multiplier   decimal.Decimal `db:"multiplier"`
	Priority     int             `db:"priority"`
	Active       bool            `db:"active"`
	model.Metadata
}

func (s SeasonalPeriod) AppliesTo(code string) bool {
	return s.RoomTypeCode == nil || *s.RoomTypeCode == code
}

// ToRate builds the pricing view of the room type. Seasons must already be in evaluation order.
func (r RoomType) ToRate(seasons []SeasonalPeriod) ratetable.RoomType {
	rate := ratetable.RoomType{
		Code:           r.Code,
		Name:           r.Name,
		Description:    r.Description,
		BaseRate:       r.BaseRate,
		MaxGuests:      r.MaxGuests,
		TotalInventory: r.TotalInventory,
	}

	for _, season := range seasons {
		if !season.Active || !season.AppliesTo(r.Code) {
			continue
		}

		rate.Seasons = append(rate.Seasons, ratetable.SeasonalPeriod{
			Name:       season.Name,
			StartDate:  season.StartDate,
			EndDate:    season.EndDate,
			Multiplier: season.Multiplier,
		})
	}

	return rate
}
