package model

import "github.com/shopspring/decimal"

const (
	FieldHotelID      = "hotel_id"
	FieldHotelName    = "hotel_name"
	FieldTotalRevenue = "total_revenue"
)

// HotelRevenue is the sum of booking costs over every room of a hotel.
type HotelRevenue struct {
	HotelID      int64           `db:"hotel_id"      json:"hotel_id"`
	HotelName    string          `db:"hotel_name"    json:"hotel_name"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}
