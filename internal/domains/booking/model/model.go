package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "booking_id"
	FieldGuestID      = "guest_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalCost    = "total_cost"
)

type Booking struct {
	ID           int64           `db:"booking_id"     generated:"true"`
	GuestID      int64           `db:"guest_id"`
	RoomID       int64           `db:"room_id"`
	CheckInDate  time.Time       `db:"check_in_date"`
	CheckOutDate time.Time       `db:"check_out_date"`
	TotalCost    decimal.Decimal `db:"total_cost"`
}
