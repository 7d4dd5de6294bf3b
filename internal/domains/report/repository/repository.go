package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/report/model"
	"hotel/shared/constant"
	"hotel/shared/logger"
)

const (
	queryRevenueByHotel = `SELECT h.hotel_id, h.hotel_name, COALESCE(SUM(b.total_cost), 0) AS total_revenue
FROM hotels h
JOIN rooms r ON r.hotel_id = h.hotel_id
JOIN bookings b ON b.room_id = r.room_id
GROUP BY h.hotel_id, h.hotel_name
ORDER BY h.hotel_id`
)

type Report interface {
	// RevenueByHotel lists hotels that have at least one booking.
	RevenueByHotel(ctx context.Context) ([]model.HotelRevenue, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) RevenueByHotel(ctx context.Context) ([]model.HotelRevenue, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.RevenueByHotel")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryRevenueByHotel)

	rows := []model.HotelRevenue{}

	if err := r.db.Read.SelectContext(ctx, &rows, queryRevenueByHotel); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	return rows, nil
}
