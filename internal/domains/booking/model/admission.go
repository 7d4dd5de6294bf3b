package model

import (
	"hotel/shared/failure"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAdmitted Status = "admitted"
	StatusRejected Status = "rejected"
)

// Reason explains why a request was rejected.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonRoomNotFound     Reason = "room_not_found"
	ReasonGuestNotFound    Reason = "guest_not_found"
	ReasonInvalidDateRange Reason = "invalid_date_range"
	ReasonBookingConflict  Reason = "booking_conflict"
)

// BookingRequest asks for RoomID from CheckInDate to CheckOutDate. Both dates
// are calendar days.
type BookingRequest struct {
	GuestID      int64
	RoomID       int64
	CheckInDate  time.Time
	CheckOutDate time.Time
}

type AdmissionResult struct {
	Status    Status
	BookingID int64
	TotalCost decimal.Decimal
	Reason    Reason
}

func Admitted(bookingID int64, totalCost decimal.Decimal) AdmissionResult {
	return AdmissionResult{Status: StatusAdmitted, BookingID: bookingID, TotalCost: totalCost}
}

func Rejected(reason Reason) AdmissionResult {
	return AdmissionResult{Status: StatusRejected, Reason: reason}
}

func (r AdmissionResult) IsAdmitted() bool {
	return r.Status == StatusAdmitted
}

// Err names the error kind behind a rejection; it is nil for an admitted request.
func (r AdmissionResult) Err() error {
	switch r.Reason {
	case ReasonRoomNotFound:
		return failure.ErrRoomNotFound
	case ReasonGuestNotFound:
		return failure.ErrGuestNotFound
	case ReasonInvalidDateRange:
		return failure.ErrInvalidDateRange
	case ReasonBookingConflict:
		return failure.ErrBookingConflict
	}

	return nil
}
