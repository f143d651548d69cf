package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/pricing/ratetable"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func stay(roomType, status string, checkIn, checkOut time.Time) bookingModel.Reservation {
	return bookingModel.Reservation{
		RoomType:     roomType,
		Status:       status,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}
}

func newTable(t *testing.T) *ratetable.Table {
	t.Helper()

	table, err := ratetable.New(decimal.NewFromFloat(0.16), ratetable.DefaultRoomTypes())
	require.NoError(t, err)

	return table
}

func TestAvailabilityService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, newTable(t), mocks.NewOtel())

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		roomType  string
		setupMock func()
		want      model.Availability
		wantErr   bool
		category  failure.Category
	}{
		{
			name:     "adjacent stay does not conflict",
			checkIn:  day(2025, 8, 17),
			checkOut: day(2025, 8, 19),
			roomType: "presidential-villa",
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "presidential-villa", day(2025, 8, 17), day(2025, 8, 19)).
					Return([]bookingModel.Reservation{
						stay("presidential-villa", bookingModel.StatusConfirmed, day(2025, 8, 15), day(2025, 8, 17)),
					}, nil)
			},
			want: model.Availability{"presidential-villa": {Total: 2, Available: 2, Booked: 0}},
		},
		{
			name:     "villa fully booked",
			checkIn:  day(2025, 8, 15),
			checkOut: day(2025, 8, 18),
			roomType: "presidential-villa",
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "presidential-villa", gomock.Any(), gomock.Any()).
					Return([]bookingModel.Reservation{
						stay("presidential-villa", bookingModel.StatusPending, day(2025, 8, 14), day(2025, 8, 16)),
						stay("presidential-villa", bookingModel.StatusConfirmed, day(2025, 8, 17), day(2025, 8, 20)),
					}, nil)
			},
			want: model.Availability{"presidential-villa": {Total: 2, Available: 0, Booked: 2}},
		},
		{
			name:     "overbooking never goes negative",
			checkIn:  day(2025, 8, 15),
			checkOut: day(2025, 8, 16),
			roomType: "presidential-villa",
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "presidential-villa", gomock.Any(), gomock.Any()).
					Return([]bookingModel.Reservation{
						stay("presidential-villa", bookingModel.StatusConfirmed, day(2025, 8, 15), day(2025, 8, 16)),
						stay("presidential-villa", bookingModel.StatusConfirmed, day(2025, 8, 15), day(2025, 8, 16)),
						stay("presidential-villa", bookingModel.StatusConfirmed, day(2025, 8, 15), day(2025, 8, 16)),
					}, nil)
			},
			want: model.Availability{"presidential-villa": {Total: 2, Available: 0, Booked: 3}},
		},
		{
			name:     "released statuses hold no inventory",
			checkIn:  day(2025, 8, 15),
			checkOut: day(2025, 8, 16),
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "", gomock.Any(), gomock.Any()).
					Return([]bookingModel.Reservation{
						stay("ocean-view", bookingModel.StatusCancelled, day(2025, 8, 15), day(2025, 8, 16)),
						stay("ocean-view", bookingModel.StatusNoShow, day(2025, 8, 15), day(2025, 8, 16)),
						stay("ocean-view", bookingModel.StatusPending, day(2025, 8, 15), day(2025, 8, 16)),
					}, nil)
			},
			want: model.Availability{
				"ocean-view":         {Total: 10, Available: 9, Booked: 1},
				"beachfront-suite":   {Total: 5, Available: 5, Booked: 0},
				"presidential-villa": {Total: 2, Available: 2, Booked: 0},
			},
		},
		{
			name:     "same day snapshot covers that night",
			checkIn:  day(2025, 8, 16),
			checkOut: day(2025, 8, 16),
			roomType: "ocean-view",
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "ocean-view", day(2025, 8, 16), day(2025, 8, 17)).
					Return([]bookingModel.Reservation{
						stay("ocean-view", bookingModel.StatusConfirmed, day(2025, 8, 15), day(2025, 8, 17)),
					}, nil)
			},
			want: model.Availability{"ocean-view": {Total: 10, Available: 9, Booked: 1}},
		},
		{
			name:      "unknown room type",
			checkIn:   day(2025, 8, 15),
			checkOut:  day(2025, 8, 16),
			roomType:  "penthouse",
			setupMock: func() {},
			wantErr:   true,
			category:  failure.CategoryValidation,
		},
		{
			name:      "reversed range",
			checkIn:   day(2025, 8, 16),
			checkOut:  day(2025, 8, 15),
			setupMock: func() {},
			wantErr:   true,
			category:  failure.CategoryValidation,
		},
		{
			name:     "store failure",
			checkIn:  day(2025, 8, 15),
			checkOut: day(2025, 8, 16),
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr:  true,
			category: failure.CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := svc.Check(context.Background(), tt.checkIn, tt.checkOut, tt.roomType)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.category, failure.GetCategory(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailabilityService_Check_Invariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, newTable(t), mocks.NewOtel())

	for booked := range 8 {
		existing := make([]bookingModel.Reservation, booked)
		for i := range existing {
			existing[i] = stay("beachfront-suite", bookingModel.StatusConfirmed, day(2025, 9, 1), day(2025, 9, 3))
		}

		mockRepo.EXPECT().
			FindOverlapping(gomock.Any(), "beachfront-suite", gomock.Any(), gomock.Any()).
			Return(existing, nil)

		got, err := svc.Check(context.Background(), day(2025, 9, 2), day(2025, 9, 4), "beachfront-suite")
		require.NoError(t, err)

		assert.Equal(t, max(0, 5-booked), got["beachfront-suite"].Available)
		assert.GreaterOrEqual(t, got["beachfront-suite"].Available, 0)
	}
}

func TestAvailabilityService_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockReservation(ctrl)
	svc := service.New(mockRepo, newTable(t), mocks.NewOtel())

	today := timezone.Today()

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func()
		rooms     int
		wantErr   bool
	}{
		{
			name: "no dates reports tonight",
			req:  dto.AvailabilityRequest{},
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "", today, today.AddDate(0, 0, 1)).
					Return(nil, nil)
			},
			rooms: 3,
		},
		{
			name: "future range for one type",
			req: dto.AvailabilityRequest{
				CheckIn:  today.AddDate(0, 0, 10).Format(constant.DateOnlyFormat),
				CheckOut: today.AddDate(0, 0, 12).Format(constant.DateOnlyFormat),
				RoomType: "ocean-view",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					FindOverlapping(gomock.Any(), "ocean-view", gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			rooms: 1,
		},
		{
			name: "check in in the past",
			req: dto.AvailabilityRequest{
				CheckIn:  today.AddDate(0, 0, -2).Format(constant.DateOnlyFormat),
				CheckOut: today.AddDate(0, 0, 1).Format(constant.DateOnlyFormat),
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "check out before check in",
			req: dto.AvailabilityRequest{
				CheckIn:  today.AddDate(0, 0, 5).Format(constant.DateOnlyFormat),
				CheckOut: today.AddDate(0, 0, 3).Format(constant.DateOnlyFormat),
			},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Query(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, failure.CategoryValidation))

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Rooms, tt.rooms)

			for _, room := range res.Rooms {
				assert.True(t, room.IsAvailable)
				assert.Equal(t, room.Total, room.Available)
			}
		})
	}
}
