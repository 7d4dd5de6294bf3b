package model

import (
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"strconv"
)

// AdmittedEvent is published once a booking has been committed.
type AdmittedEvent struct {
	BookingID    int64  `json:"booking_id"`
	GuestID      int64  `json:"guest_id"`
	RoomID       int64  `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	TotalCost    string `json:"total_cost"`
}

func NewAdmittedEvent(req BookingRequest, result AdmissionResult) AdmittedEvent {
	return AdmittedEvent{
		BookingID:    result.BookingID,
		GuestID:      req.GuestID,
		RoomID:       req.RoomID,
		CheckInDate:  timezone.FormatDate(req.CheckInDate),
		CheckOutDate: timezone.FormatDate(req.CheckOutDate),
		TotalCost:    result.TotalCost.StringFixed(constant.MoneyPlaces),
	}
}

// Key keeps every event of a room on one partition.
func (e AdmittedEvent) Key() string {
	return strconv.FormatInt(e.RoomID, 10)
}
