package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Guest interface {
	InsertIfAbsent(ctx context.Context, model model.Guest) (id int64, inserted bool, err error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// InsertIfAbsent keys guests by email.
func (r *repositoryImpl) InsertIfAbsent(ctx context.Context, guest model.Guest) (int64, bool, error) {
	return r.Repository.InsertIfAbsent(ctx, guest, model.FieldEmail) //nolint:wrapcheck
}
