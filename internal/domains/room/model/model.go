package model

import "github.com/shopspring/decimal"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "room_id"
	FieldHotelID       = "hotel_id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
)

type Room struct {
	ID            int64           `db:"room_id"         generated:"true"`
	HotelID       int64           `db:"hotel_id"`
	RoomNumber    int             `db:"room_number"`
	RoomType      string          `db:"room_type"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
}
