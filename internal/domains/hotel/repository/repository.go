package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/hotel/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Hotel interface {
	InsertIfAbsent(ctx context.Context, model model.Hotel) (id int64, inserted bool, err error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// InsertIfAbsent keys hotels by name.
func (r *repositoryImpl) InsertIfAbsent(ctx context.Context, hotel model.Hotel) (int64, bool, error) {
	return r.Repository.InsertIfAbsent(ctx, hotel, model.FieldName) //nolint:wrapcheck
}
