package dto

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	bookingModel "hotel/internal/domains/booking/model"
	guestModel "hotel/internal/domains/guest/model"
	hotelModel "hotel/internal/domains/hotel/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/timezone"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrUnknownFormat   = errors.New("unknown dataset format")
	errNonPositiveCost = errors.New("PricePerNight must be greater than 0")
)

// Money is a decimal amount read from either a JSON number or a YAML scalar.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	amount, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", value.Value, err)
	}

	m.Decimal = amount

	return nil
}

func (m Money) MarshalYAML() (any, error) {
	return m.StringFixed(2), nil
}

type Hotel struct {
	HotelName  string `json:"HotelName"  yaml:"HotelName"  validate:"required,max=255"`
	Location   string `json:"Location"   yaml:"Location"   validate:"required,max=255"`
	TotalRooms int    `json:"TotalRooms" yaml:"TotalRooms" validate:"gte=0"`
}

func (h *Hotel) ToModel() hotelModel.Hotel {
	return hotelModel.Hotel{
		Name:       h.HotelName,
		Location:   h.Location,
		TotalRooms: h.TotalRooms,
	}
}

type Room struct {
	HotelID       int64  `json:"HotelID"       yaml:"HotelID"       validate:"required,gt=0"`
	RoomNumber    int    `json:"RoomNumber"    yaml:"RoomNumber"    validate:"required,gt=0"`
	RoomType      string `json:"RoomType"      yaml:"RoomType"      validate:"required,max=255"`
	PricePerNight Money  `json:"PricePerNight" yaml:"PricePerNight"`
}

func (r *Room) ToModel() (roomModel.Room, error) {
	if !r.PricePerNight.IsPositive() {
		return roomModel.Room{}, errNonPositiveCost
	}

	return roomModel.Room{
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight.Round(2),
	}, nil
}

type Guest struct {
	FirstName string `json:"FirstName" yaml:"FirstName" validate:"required,max=255"`
	LastName  string `json:"LastName"  yaml:"LastName"  validate:"required,max=255"`
	Email     string `json:"Email"     yaml:"Email"     validate:"required,email,max=255"`
	Phone     string `json:"Phone"     yaml:"Phone"     validate:"omitempty,max=20"`
}

func (g *Guest) ToModel() guestModel.Guest {
	return guestModel.Guest{
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Email:     g.Email,
		Phone:     sql.NullString{String: g.Phone, Valid: g.Phone != ""},
	}
}

type Booking struct {
	GuestID      int64  `json:"GuestID"      yaml:"GuestID"      validate:"required,gt=0"`
	RoomID       int64  `json:"RoomID"       yaml:"RoomID"       validate:"required,gt=0"`
	CheckInDate  string `json:"CheckInDate"  yaml:"CheckInDate"  validate:"required,date"`
	CheckOutDate string `json:"CheckOutDate" yaml:"CheckOutDate" validate:"required,date"`
	// TotalCost is informational; the stored cost is always recomputed.
	TotalCost *Money `json:"TotalCost,omitempty" yaml:"TotalCost,omitempty"`
}

func (b *Booking) ToModel() (bookingModel.BookingRequest, error) {
	checkIn, err := timezone.ParseDate(b.CheckInDate)
	if err != nil {
		return bookingModel.BookingRequest{}, fmt.Errorf("invalid CheckInDate: %w", err)
	}

	checkOut, err := timezone.ParseDate(b.CheckOutDate)
	if err != nil {
		return bookingModel.BookingRequest{}, fmt.Errorf("invalid CheckOutDate: %w", err)
	}

	return bookingModel.BookingRequest{
		GuestID:      b.GuestID,
		RoomID:       b.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}

// Dataset is the reference data loaded by the seeder. Rooms point at hotels and
// bookings point at guests and rooms by their store identifiers.
type Dataset struct {
	Hotels   []Hotel   `json:"Hotels"   yaml:"Hotels"`
	Rooms    []Room    `json:"Rooms"    yaml:"Rooms"`
	Guests   []Guest   `json:"Guests"   yaml:"Guests"`
	Bookings []Booking `json:"Bookings" yaml:"Bookings"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

func Decode(data []byte, format string) (Dataset, error) {
	var dataset Dataset

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(&dataset); err != nil {
			return dataset, fmt.Errorf("failed to decode json dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &dataset); err != nil {
			return dataset, fmt.Errorf("failed to decode yaml dataset: %w", err)
		}
	default:
		return dataset, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return dataset, nil
}

func Load(path string) (Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Dataset{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	return Decode(data, format)
}
