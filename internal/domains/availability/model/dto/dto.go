package dto

import (
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/pricing/ratetable"
	"hotel/shared/constant"
	"time"
)

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"omitempty,isodate,required_with=CheckOut"`
	CheckOut string `json:"check_out" validate:"omitempty,isodate,required_with=CheckIn"`
	RoomType string `json:"room_type" validate:"omitempty,roomtype,max=50"`
}

type RoomAvailabilityResponse struct {
	RoomType    string `json:"room_type"`
	Name        string `json:"name"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	Booked      int    `json:"booked"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	CheckIn  string                     `json:"check_in"`
	CheckOut string                     `json:"check_out"`
	Rooms    []RoomAvailabilityResponse `json:"rooms"`
}

// FromModel lists rooms in catalogue order, skipping types that were not queried.
func (r *AvailabilityResponse) FromModel(availability model.Availability, roomTypes []ratetable.RoomType, checkIn, checkOut time.Time) {
	r.CheckIn = checkIn.Format(constant.DateOnlyFormat)
	r.CheckOut = checkOut.Format(constant.DateOnlyFormat)
	r.Rooms = make([]RoomAvailabilityResponse, 0, len(availability))

	for _, roomType := range roomTypes {
		entry, ok := availability[roomType.Code]
		if !ok {
			continue
		}

		r.Rooms = append(r.Rooms, RoomAvailabilityResponse{
			RoomType:    roomType.Code,
			Name:        roomType.Name,
			Total:       entry.Total,
			Available:   entry.Available,
			Booked:      entry.Booked,
			IsAvailable: entry.Available > 0,
		})
	}
}
