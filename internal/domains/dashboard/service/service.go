package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	availabilityService "hotel/internal/domains/availability/service"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecentLimit = 10
	defaultReportDir   = "reports"
	maxReportDays      = 366
)

var reportHeader = []string{
	"confirmation_code", "first_name", "last_name", "email", "phone", "room_type",
	"check_in", "check_out", "nights", "guest_count", "subtotal", "taxes", "total_amount",
	"status", "payment_status", "source", "created_at",
}

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Recent(ctx context.Context, req dto.RecentRequest) ([]dto.RecentBooking, error)
	ExportReport(ctx context.Context, req dto.ReportRequest) (dto.ReportResponse, error)
}

type serviceImpl struct {
	repo         bookingRepo.Reservation
	availability availabilityService.Availability
	cfg          *config.Config
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo bookingRepo.Reservation,
	availability availabilityService.Availability,
	cfg *config.Config,
	otel otel.Otel,
	s3 s3.S3,
) Dashboard {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		cfg:          cfg,
		otel:         otel,
		s3:           s3,
	}
}

func filter(field, argName, operator string, value any) gDto.Filter {
	return gDto.Filter{
		ArgName:  argName,
		Field:    field,
		Value:    value,
		Operator: operator,
		Table:    bookingModel.TableName,
	}
}

func and(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

// monthWindow returns [first day of this month, first day of next month) in the app timezone.
func monthWindow() (time.Time, time.Time) {
	now := timezone.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timezone.GetLocation())

	return start, start.AddDate(0, 1, 0)
}

func occupancyRate(occupied, total int) string {
	if total == 0 {
		return decimal.Zero.StringFixed(1)
	}

	return decimal.NewFromInt(int64(occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}

// Stats runs every aggregate concurrently; the first failure cancels the rest.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Stats")
	defer scope.Finish(&err)

	today := timezone.Today()
	monthStart, monthEnd := monthWindow()

	thisMonth := []any{
		filter(bookingModel.FieldCreatedAt, "month_start", gDto.FilterOperatorGreaterEq, monthStart),
		filter(bookingModel.FieldCreatedAt, "month_end", gDto.FilterOperatorLess, monthEnd),
	}
	paid := filter(bookingModel.FieldPaymentStatus, "", gDto.FilterOperatorEq, bookingModel.PaymentPaid)
	confirmed := filter(bookingModel.FieldStatus, "", gDto.FilterOperatorEq, bookingModel.StatusConfirmed)

	counts := []struct {
		target *int
		filter gDto.FilterGroup
	}{
		{&res.Bookings.Total, gDto.FilterGroup{}},
		{&res.Bookings.Monthly, and(thisMonth...)},
		{&res.Bookings.Pending, and(filter(bookingModel.FieldStatus, "", gDto.FilterOperatorEq, bookingModel.StatusPending))},
		{&res.Bookings.Confirmed, and(confirmed)},
		{&res.TodayActivity.CheckIns, and(confirmed, filter(bookingModel.FieldCheckInDate, "", gDto.FilterOperatorEq, today))},
		{&res.TodayActivity.CheckOuts, and(confirmed, filter(bookingModel.FieldCheckOutDate, "", gDto.FilterOperatorEq, today))},
	}

	var monthlyRevenue, totalRevenue decimal.Decimal

	group, gctx := errgroup.WithContext(ctx)

	for _, count := range counts {
		group.Go(func() error {
			total, err := s.repo.Count(gctx, count.filter)
			if err != nil {
				return fmt.Errorf("failed to count reservations: %w", err)
			}

			*count.target = total

			return nil
		})
	}

	group.Go(func() error {
		total, err := s.repo.SumTotal(gctx, and(append([]any{paid}, thisMonth...)...))
		if err != nil {
			return fmt.Errorf("failed to sum monthly revenue: %w", err)
		}

		monthlyRevenue = total

		return nil
	})

	group.Go(func() error {
		total, err := s.repo.SumTotal(gctx, and(paid))
		if err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}

		totalRevenue = total

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build dashboard stats")

		return res, err //nolint:wrapcheck
	}

	res.Revenue = dto.RevenueStats{
		Monthly: monthlyRevenue.StringFixed(2),
		Total:   totalRevenue.StringFixed(2),
	}

	snapshot, err := s.availability.Check(ctx, today, today, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupancy snapshot")

		return res, fmt.Errorf("failed to get occupancy snapshot: %w", err)
	}

	res.RoomOccupancy = make(map[string]dto.OccupancyStats, len(snapshot))

	for code, room := range snapshot {
		res.RoomOccupancy[code] = dto.OccupancyStats{
			Total:         room.Total,
			Occupied:      room.Booked,
			Available:     room.Available,
			OccupancyRate: occupancyRate(room.Booked, room.Total),
		}
	}

	return res, nil
}

func (s *serviceImpl) Recent(ctx context.Context, req dto.RecentRequest) (res []dto.RecentBooking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Recent")
	defer scope.Finish(&err)

	limit := req.Limit
	if limit == 0 {
		limit = s.cfg.Booking.RecentLimit
	}

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	params := gDto.QueryParams{
		Page:    1,
		Limit:   limit,
		SortBy:  bookingModel.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	reservations, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent reservations")

		return res, fmt.Errorf("failed to get recent reservations: %w", err)
	}

	res = make([]dto.RecentBooking, len(reservations))
	for i, reservation := range reservations {
		res[i].FromModel(reservation)
	}

	return res, nil
}

func reportRow(r bookingModel.Reservation) []string {
	return []string{
		r.ConfirmationCode,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.RoomType,
		r.CheckInDate.Format(constant.DateOnlyFormat),
		r.CheckOutDate.Format(constant.DateOnlyFormat),
		strconv.Itoa(r.Nights),
		strconv.Itoa(r.GuestCount),
		r.Subtotal.StringFixed(2),
		r.Taxes.StringFixed(2),
		r.TotalAmount.StringFixed(2),
		r.Status,
		r.PaymentStatus,
		r.Source,
		timezone.Format(r.CreatedAt, time.RFC3339),
	}
}

// ExportReport writes every reservation checking in between From and To to a private CSV object and returns a
// short lived download link.
func (s *serviceImpl) ExportReport(ctx context.Context, req dto.ReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.ExportReport")
	defer scope.Finish(&err)

	from, errFrom := timezone.ParseDate(req.From)
	to, errTo := timezone.ParseDate(req.To)

	switch {
	case errFrom != nil || errTo != nil:
		return res, failure.Validation("from and to must be dates in YYYY-MM-DD format") // nolint:wrapcheck
	case to.Before(from):
		return res, failure.Validation("to must not be before from") // nolint:wrapcheck
	case to.Sub(from) > maxReportDays*24*time.Hour:
		return res, failure.Validation(fmt.Sprintf("report range cannot exceed %d days", maxReportDays)) // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: bookingModel.FieldCheckInDate, SortDir: gDto.SortDirAsc}
	reservations, err := s.repo.GetAll(ctx, params, and(
		filter(bookingModel.FieldCheckInDate, "report_from", gDto.FilterOperatorGreaterEq, from),
		filter(bookingModel.FieldCheckInDate, "report_to", gDto.FilterOperatorLessEq, to),
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for report")

		return res, fmt.Errorf("failed to get reservations for report: %w", err)
	}

	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	if err = writer.Write(reportHeader); err != nil {
		return res, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, reservation := range reservations {
		if err = writer.Write(reportRow(reservation)); err != nil {
			return res, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()

	if err = writer.Error(); err != nil {
		return res, fmt.Errorf("failed to write report: %w", err)
	}

	dir := s.cfg.Booking.ReportDir
	if dir == constant.Empty {
		dir = defaultReportDir
	}

	filename := fmt.Sprintf("bookings_%s_%s_%s.csv", req.From, req.To, uuid.NewString())

	url, err := s.s3.Put(ctx, s3.Object{
		Directory:   dir,
		Name:        filename,
		ContentType: constant.ContentTypeCSV,
		Body:        &buf,
		Private:     true,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload report")

		return res, fmt.Errorf("failed to upload report: %w", err)
	}

	log.Info().Str("report", path.Join(dir, filename)).Int("rows", len(reservations)).Msg("booking report exported")

	return dto.ReportResponse{
		URL:  url,
		From: req.From,
		To:   req.To,
		Rows: len(reservations),
	}, nil
}
