package model

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID         = "hotel_id"
	FieldName       = "hotel_name"
	FieldLocation   = "location"
	FieldTotalRooms = "total_rooms"
)

type Hotel struct {
	ID         int64  `db:"hotel_id"    generated:"true"`
	Name       string `db:"hotel_name"`
	Location   string `db:"location"`
	TotalRooms int    `db:"total_rooms"`
}
