package service_test

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"
	s3Mocks "hotel/infras/s3/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/internal/domains/dashboard/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

type fixture struct {
	repo         *bookingMocks.MockReservation
	availability *availabilityMocks.MockAvailability
	s3           *s3Mocks.MockS3
	svc          service.Dashboard
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.RecentLimit = 10
	cfg.Booking.ReportDir = "reports"
	cfg.External.S3.BucketName = "hotel"

	f := fixture{
		repo:         bookingMocks.NewMockReservation(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, f.availability, cfg, mocks.NewOtel(), f.s3)

	return f
}

// describe names a filter group by its fields so concurrent aggregate calls can be told apart.
func describe(group gDto.FilterGroup) string {
	parts := make([]string, 0, len(group.Filters))

	for _, item := range group.Filters {
		f, ok := item.(gDto.Filter)
		if !ok {
			continue
		}

		if value, ok := f.Value.(string); ok {
			parts = append(parts, f.Field+"="+value)

			continue
		}

		parts = append(parts, f.Field)
	}

	return strings.Join(parts, ",")
}

func TestDashboardService_Stats(t *testing.T) {
	counts := map[string]int{
		"":                                42,
		"created_at,created_at":           7,
		"status=pending":                  5,
		"status=confirmed":                30,
		"status=confirmed,check_in_date":  3,
		"status=confirmed,check_out_date": 2,
	}

	t.Run("aggregates", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				total, ok := counts[describe(filter)]
				assert.True(t, ok, describe(filter))

				return total, nil
			}).Times(len(counts))
		f.repo.EXPECT().SumTotal(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (decimal.Decimal, error) {
				if describe(filter) == "payment_status=paid" {
					return decimal.RequireFromString("12345.6"), nil
				}

				return decimal.RequireFromString("1508"), nil
			}).Times(2)
		f.availability.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(_ context.Context, checkIn, checkOut time.Time, _ string) (availabilityModel.Availability, error) {
				assert.True(t, checkIn.Equal(checkOut), "snapshot uses a single day")

				return availabilityModel.Availability{
					"ocean-view":         {Total: 10, Booked: 3, Available: 7},
					"presidential-villa": {Total: 2, Booked: 2, Available: 0},
					"beachfront-suite":   {Total: 5, Booked: 0, Available: 5},
				}, nil
			})

		res, err := f.svc.Stats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, dto.BookingStats{Total: 42, Monthly: 7, Pending: 5, Confirmed: 30}, res.Bookings)
		assert.Equal(t, dto.TodayActivity{CheckIns: 3, CheckOuts: 2}, res.TodayActivity)
		assert.Equal(t, "12345.60", res.Revenue.Total)
		assert.Equal(t, "1508.00", res.Revenue.Monthly)
		assert.Equal(t, "30.0", res.RoomOccupancy["ocean-view"].OccupancyRate)
		assert.Equal(t, "100.0", res.RoomOccupancy["presidential-villa"].OccupancyRate)
		assert.Equal(t, "0.0", res.RoomOccupancy["beachfront-suite"].OccupancyRate)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down")).AnyTimes()
		f.repo.EXPECT().SumTotal(gomock.Any(), gomock.Any()).Return(decimal.Zero, nil).AnyTimes()

		_, err := f.svc.Stats(context.Background())
		require.Error(t, err)
		assert.Equal(t, failure.CategoryInternal, failure.GetCategory(err))
	})
}

func TestDashboardService_Recent(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RecentRequest
		wantLimit int
	}{
		{name: "default limit", req: dto.RecentRequest{}, wantLimit: 10},
		{name: "explicit limit", req: dto.RecentRequest{Limit: 3}, wantLimit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]bookingModel.Reservation, error) {
					assert.Equal(t, tt.wantLimit, params.Limit)
					assert.Equal(t, bookingModel.FieldCreatedAt, params.SortBy)
					assert.Equal(t, gDto.SortDirDesc, params.SortDir)

					return []bookingModel.Reservation{{
						ConfirmationCode: "CCABCDEFGH12",
						FirstName:        "Ada",
						LastName:         "Lovelace",
						CheckInDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
						CheckOutDate:     time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
						RoomType:         "ocean-view",
						TotalAmount:      decimal.RequireFromString("417.6"),
						Status:           bookingModel.StatusPending,
					}}, nil
				})

			res, err := f.svc.Recent(context.Background(), tt.req)
			require.NoError(t, err)
			require.Len(t, res, 1)
			assert.Equal(t, "2025-07-01", res[0].CheckIn)
			assert.Equal(t, "417.60", res[0].TotalAmount)
		})
	}
}

func TestDashboardService_ExportReport(t *testing.T) {
	t.Run("uploads csv", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Reservation{
			{
				ConfirmationCode: "CCABCDEFGH12",
				FirstName:        "Ada",
				LastName:         "Lovelace, Countess",
				CheckInDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				CheckOutDate:     time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
				Nights:           2,
				GuestCount:       2,
				RoomType:         "ocean-view",
				Subtotal:         decimal.RequireFromString("360"),
				Taxes:            decimal.RequireFromString("57.6"),
				TotalAmount:      decimal.RequireFromString("417.6"),
				Status:           bookingModel.StatusConfirmed,
				PaymentStatus:    bookingModel.PaymentPaid,
				Source:           bookingModel.SourceGuest,
			},
		}, nil)
		f.s3.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, obj s3.Object) (string, error) {
				assert.Equal(t, "reports", obj.Directory)
				assert.Equal(t, constant.ContentTypeCSV, obj.ContentType)
				assert.True(t, obj.Private)
				assert.True(t, strings.HasPrefix(obj.Name, "bookings_2025-07-01_2025-07-31_"))

				records, err := csv.NewReader(obj.Body).ReadAll()
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, "confirmation_code", records[0][0])
				assert.Equal(t, "Lovelace, Countess", records[1][2])
				assert.Equal(t, "417.60", records[1][12])

				return "https://storage.example.com/hotel/" + obj.Key() + "?X-Amz-Signature=abc", nil
			})

		res, err := f.svc.ExportReport(context.Background(), dto.ReportRequest{From: "2025-07-01", To: "2025-07-31"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Rows)
		assert.Contains(t, res.URL, "https://storage.example.com/hotel/reports/bookings_")
	})

	tests := []struct {
		name string
		req  dto.ReportRequest
	}{
		{name: "reversed range", req: dto.ReportRequest{From: "2025-07-31", To: "2025-07-01"}},
		{name: "bad date", req: dto.ReportRequest{From: "07/01/2025", To: "2025-07-31"}},
		{name: "range too long", req: dto.ReportRequest{From: "2024-01-01", To: "2025-07-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.ExportReport(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, failure.CategoryValidation, failure.GetCategory(err))
		})
	}

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.s3.EXPECT().Put(gomock.Any(), gomock.Any()).Return("", errors.New("s3 down"))

		_, err := f.svc.ExportReport(context.Background(), dto.ReportRequest{From: "2025-07-01", To: "2025-07-31"})
		require.Error(t, err)
	})
}
