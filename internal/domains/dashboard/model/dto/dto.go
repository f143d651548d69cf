package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"time"
)

type BookingStats struct {
	Total     int `json:"total"`
	Monthly   int `json:"monthly"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
}

type RevenueStats struct {
	Monthly string `json:"monthly"`
	Total   string `json:"total"`
}

type TodayActivity struct {
	CheckIns  int `json:"check_ins"`
	CheckOuts int `json:"check_outs"`
}

type OccupancyStats struct {
	Total         int    `json:"total"`
	Occupied      int    `json:"occupied"`
	Available     int    `json:"available"`
	OccupancyRate string `json:"occupancy_rate"`
}

type StatsResponse struct {
	Bookings      BookingStats              `json:"bookings"`
	Revenue       RevenueStats              `json:"revenue"`
	TodayActivity TodayActivity             `json:"today_activity"`
	RoomOccupancy map[string]OccupancyStats `json:"room_occupancy"`
}

type RecentRequest struct {
	Limit int `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

type RecentBooking struct {
	ConfirmationCode string    `json:"confirmation_code"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	RoomType         string    `json:"room_type"`
	TotalAmount      string    `json:"total_amount"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *RecentBooking) FromModel(model bookingModel.Reservation) {
	r.ConfirmationCode = model.ConfirmationCode
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.CheckIn = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.RoomType = model.RoomType
	r.TotalAmount = model.TotalAmount.StringFixed(2)
	r.Status = model.Status
	r.CreatedAt = model.CreatedAt
}

// ReportRequest selects reservations by check-in date, both bounds inclusive.
type ReportRequest struct {
	From string `json:"from" validate:"required,isodate"`
	To   string `json:"to"   validate:"required,isodate"`
}

type ReportResponse struct {
	URL  string `json:"url"`
	From string `json:"from"`
	To   string `json:"to"`
	Rows int    `json:"rows"`
}
