package model

import "database/sql"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID        = "guest_id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
)

type Guest struct {
	ID        int64          `db:"guest_id"   generated:"true"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
}
