package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Season interface {
	Insert(ctx context.Context, model model.SeasonalPeriod) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SeasonalPeriod, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type roomTypeImpl struct {
	gRepo.Repository[model.RoomType]
}

type seasonImpl struct {
	gRepo.Repository[model.SeasonalPeriod]
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otel,
			gRepo.WithDefaultOrder(model.TableName+"."+model.FieldBaseRate+" ASC")),
	}
}

func NewSeason(db *postgres.Connection, otel otel.Otel) Season {
	return &seasonImpl{
		Repository: gRepo.NewRepository[model.SeasonalPeriod](model.SeasonEntityName, model.SeasonTableName, model.FieldID, db, otel,
			gRepo.WithDefaultOrder(model.SeasonTableName+"."+model.FieldPriority+" ASC, "+model.SeasonTableName+"."+model.FieldStartDate+" ASC")),
	}
}

func ActiveFilter(table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
