package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	// ErrCapacityExceeded means every unit was taken by the time the insert ran.
	ErrCapacityExceeded = errors.New("no inventory left for the requested stay")
	// ErrDuplicateCode means the confirmation code already exists; the caller should draw a new one.
	ErrDuplicateCode = errors.New("confirmation code already exists")
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertIfAvailable(ctx context.Context, reservation model.Reservation, inventory int) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	FindOverlapping(ctx context.Context, roomType string, from, to time.Time) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	SumTotal(ctx context.Context, filter gDto.FilterGroup) (decimal.Decimal, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	base := gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel,
		gRepo.WithDefaultOrder(model.TableName+"."+model.FieldCreatedAt+" DESC"))

	return &repositoryImpl{
		Repository: base,
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter selects active reservations whose stay intersects [from, to). An empty room type matches every type.
func OverlapFilter(roomType string, from, to time.Time) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			ArgName:  "active_status",
			Field:    model.FieldStatus,
			Value:    model.ActiveStatuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_to",
			Field:    model.FieldCheckInDate,
			Value:    to,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_from",
			Field:    model.FieldCheckOutDate,
			Value:    from,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if roomType != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Value:    roomType,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (r *repositoryImpl) FindOverlapping(ctx context.Context, roomType string, from, to time.Time) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindOverlapping")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{}, OverlapFilter(roomType, from, to)) //nolint:wrapcheck
}

// InsertIfAvailable re-checks capacity and inserts in one transaction. Writers for the same room
// type are serialized by an advisory lock, so two requests can never both take the last unit.
func (r *repositoryImpl) InsertIfAvailable(ctx context.Context, reservation model.Reservation, inventory int) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertIfAvailable")
	defer scope.Finish(&err)

	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := postgres.LockTx(ctx, tx, model.TableName+":"+reservation.RoomType); err != nil {
			logger.ErrorWithStack(err)

			return err //nolint:wrapcheck
		}

		booked, err := r.CountTx(ctx, tx, OverlapFilter(reservation.RoomType, reservation.CheckInDate, reservation.CheckOutDate))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if booked >= inventory {
			return ErrCapacityExceeded
		}

		if err := r.InsertTx(ctx, tx, reservation); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateCode
			}

			return err //nolint:wrapcheck
		}

		return nil
	})
}

// SumTotal adds up total_amount over the filtered reservations.
func (r *repositoryImpl) SumTotal(ctx context.Context, filter gDto.FilterGroup) (decimal.Decimal, error) {
	return r.Sum(ctx, model.FieldTotalAmount, filter) //nolint:wrapcheck
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
