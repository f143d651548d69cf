package dto

import (
	"hotel/internal/domains/pricing/ratetable"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"mime/multipart"

	"github.com/shopspring/decimal"
)

type ListRoomsRequest struct {
	CheckIn  string `json:"check_in"  validate:"omitempty,isodate,required_with=CheckOut"`
	CheckOut string `json:"check_out" validate:"omitempty,isodate,required_with=CheckIn"`
	Guests   int    `json:"guests"    validate:"omitempty,gte=1,lte=8"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

// UpdateRoomRequest edits presentation only. Rates and inventory feed the rate table, which is
// fixed for the life of the process.
type UpdateRoomRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=1000"`
}

type SeasonResponse struct {
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Multiplier string `json:"multiplier"`
}

type StayResponse struct {
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Nights      int    `json:"nights"`
	Subtotal    string `json:"subtotal"`
	Taxes       string `json:"taxes"`
	Total       string `json:"total"`
	Available   int    `json:"available"`
	IsAvailable bool   `json:"is_available"`
}

type RoomResponse struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	BaseRate       string           `json:"base_rate"`
	MaxGuests      int              `json:"max_guests"`
	TotalInventory int              `json:"total_inventory"`
	Image          string           `json:"image"`
	Active         bool             `json:"active"`
	Seasons        []SeasonResponse `json:"seasons"`
	Stay           *StayResponse    `json:"stay,omitempty"`
	gDto.Metadata
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FromModel fills the response from the stored row and the seasons the rate table prices it with.
func (r *RoomResponse) FromModel(model model.RoomType, rate ratetable.RoomType) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.Description = model.Description
	r.BaseRate = money(model.BaseRate)
	r.MaxGuests = model.MaxGuests
	r.TotalInventory = model.TotalInventory
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	r.Seasons = make([]SeasonResponse, len(rate.Seasons))
	for i, season := range rate.Seasons {
		r.Seasons[i] = SeasonResponse{
			Name:       season.Name,
			StartDate:  season.StartDate.Format(constant.DateOnlyFormat),
			EndDate:    season.EndDate.Format(constant.DateOnlyFormat),
			Multiplier: season.Multiplier.String(),
		}
	}
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}
