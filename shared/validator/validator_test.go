package validator_test

import (
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestRecord struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
	RoomType  string `json:"room_type"  validate:"oneof=single double suite"`
}

func validGuest() guestRecord {
	return guestRecord{
		FirstName: "Ada",
		Email:     "ada@example.com",
		RoomType:  "double",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *guestRecord)
		wantErr string
	}{
		{
			name:   "valid record",
			mutate: func(_ *guestRecord) {},
		},
		{
			name:    "missing first name",
			mutate:  func(g *guestRecord) { g.FirstName = "" },
			wantErr: "first_name is required",
		},
		{
			name:    "invalid email",
			mutate:  func(g *guestRecord) { g.Email = "ada.example.com" },
			wantErr: "email must be a valid email address",
		},
		{
			name:    "phone too long",
			mutate:  func(g *guestRecord) { g.Phone = strings.Repeat("1", 21) },
			wantErr: "phone must be less than or equal to 20",
		},
		{
			name:    "unknown room type",
			mutate:  func(g *guestRecord) { g.RoomType = "penthouse" },
			wantErr: "room_type must be one of single double suite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guest := validGuest()
			tt.mutate(&guest)

			err := validator.ValidateStruct(&guest)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "calendar day", field: "2024-03-05", tag: "date"},
		{name: "slashed date", field: "2024/03/05", tag: "date", wantErr: true},
		{name: "nights in range", field: 3, tag: "gte=1,lte=30"},
		{name: "nights out of range", field: 31, tag: "gte=1,lte=30", wantErr: true},
		{name: "empty required", field: "", tag: "required", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			assert.Equal(t, tt.wantErr, err != nil, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"first_name":"Ada","email":"ada@example.com","room_type":"suite"}`,
		},
		{
			name:     "invalid field",
			jsonBody: `{"first_name":"Ada","email":"nope","room_type":"suite"}`,
			wantErr:  true,
		},
		{
			name:     "malformed body",
			jsonBody: `{"first_name":"Ada","email":}`,
			wantErr:  true,
		},
		{
			name:     "empty body",
			jsonBody: `{}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestRecord

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Ada", data.FirstName)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

type stayRecord struct {
	CheckInDate string          `json:"check_in_date" validate:"required,date"`
	Price       decimal.Decimal `json:"price"         validate:"gt=0"`
}

func TestCustomValidations(t *testing.T) {
	tests := []struct {
		name    string
		data    stayRecord
		wantErr string
	}{
		{
			name: "valid date and price",
			data: stayRecord{CheckInDate: "2024-03-05", Price: decimal.RequireFromString("120.00")},
		},
		{
			name:    "malformed date",
			data:    stayRecord{CheckInDate: "2024/03/05", Price: decimal.RequireFromString("120.00")},
			wantErr: "check_in_date must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "impossible date",
			data:    stayRecord{CheckInDate: "2024-02-30", Price: decimal.RequireFromString("120.00")},
			wantErr: "check_in_date must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "zero price",
			data:    stayRecord{CheckInDate: "2024-03-05", Price: decimal.Zero},
			wantErr: "price must be greater than 0",
		},
		{
			name:    "negative price",
			data:    stayRecord{CheckInDate: "2024-03-05", Price: decimal.RequireFromString("-1")},
			wantErr: "price must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
