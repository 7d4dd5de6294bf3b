package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	queryLockPrice = "SELECT price_per_night FROM rooms WHERE room_id = $1 FOR UPDATE"
)

type Room interface {
	InsertIfAbsent(ctx context.Context, model model.Room) (id int64, inserted bool, err error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	// LockPrice reads the nightly price and holds the room row lock until tx ends.
	LockPrice(ctx context.Context, sqltx *sqlx.Tx, roomID int64) (price decimal.Decimal, found bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// InsertIfAbsent keys rooms by hotel and room number.
func (r *repositoryImpl) InsertIfAbsent(ctx context.Context, room model.Room) (int64, bool, error) {
	return r.Repository.InsertIfAbsent(ctx, room, model.FieldHotelID, model.FieldRoomNumber) //nolint:wrapcheck
}

func (r *repositoryImpl) LockPrice(ctx context.Context, sqltx *sqlx.Tx, roomID int64) (price decimal.Decimal, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.LockPrice")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLockPrice)

	err = sqltx.GetContext(ctx, &price, queryLockPrice, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return decimal.Zero, false, fmt.Errorf("failed to lock room %d: %w", roomID, err)
	}

	return price, true, nil
}
