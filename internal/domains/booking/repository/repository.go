package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	argRequestedCheckIn  = "requested_check_in"
	argRequestedCheckOut = "requested_check_out"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	// OverlapsTx reports whether roomID already holds a stay touching
	// [checkIn, checkOut], boundary days included.
	OverlapsTx(ctx context.Context, sqltx *sqlx.Tx, roomID int64, checkIn, checkOut time.Time) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) OverlapsTx(ctx context.Context, sqltx *sqlx.Tx, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	return r.ExistTx(ctx, sqltx, OverlapFilter(roomID, checkIn, checkOut)) //nolint:wrapcheck
}

// OverlapFilter matches existing stays with check_in <= checkOut and
// check_out >= checkIn. That covers a stay starting or ending inside the
// requested range as well as one containing it.
func OverlapFilter(roomID int64, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				ArgName:  argRequestedCheckOut,
				Field:    model.FieldCheckInDate,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLessEq,
			},
			gDto.Filter{
				ArgName:  argRequestedCheckIn,
				Field:    model.FieldCheckOutDate,
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreaterEq,
			},
		},
	}
}
