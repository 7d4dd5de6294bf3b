package dto

import (
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

type BookingRequest struct {
	GuestID      int64  `json:"guest_id"       validate:"required,gt=0"`
	RoomID       int64  `json:"room_id"        validate:"required,gt=0"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
}

func (r *BookingRequest) ToModel() (model.BookingRequest, error) {
	checkIn, err := timezone.ParseDate(r.CheckInDate)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("invalid check_in_date: %w", err)
	}

	checkOut, err := timezone.ParseDate(r.CheckOutDate)
	if err != nil {
		return model.BookingRequest{}, fmt.Errorf("invalid check_out_date: %w", err)
	}

	return model.BookingRequest{
		GuestID:      r.GuestID,
		RoomID:       r.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}

type AdmitRequest struct {
	Bookings []BookingRequest `json:"bookings" validate:"required,min=1,dive"`
}

func (r *AdmitRequest) ToModels() ([]model.BookingRequest, error) {
	reqs := make([]model.BookingRequest, 0, len(r.Bookings))

	for i := range r.Bookings {
		req, err := r.Bookings[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("booking %d: %w", i, err)
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

type AdmissionResponse struct {
	Status    string `json:"status"`
	BookingID int64  `json:"booking_id,omitempty"`
	TotalCost string `json:"total_cost,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (r *AdmissionResponse) FromModel(result model.AdmissionResult) {
	r.Status = string(result.Status)
	r.Reason = string(result.Reason)

	if err := result.Err(); err != nil {
		r.Message = err.Error()
	}

	if result.IsAdmitted() {
		r.BookingID = result.BookingID
		r.TotalCost = result.TotalCost.StringFixed(constant.MoneyPlaces)
	}
}

// AdmitResponse lists decisions in request order. A batch that stopped early
// lists only the requests decided before the failure.
type AdmitResponse struct {
	Results []AdmissionResponse `json:"results"`
}

func (r *AdmitResponse) FromModels(results []model.AdmissionResult) {
	r.Results = make([]AdmissionResponse, len(results))
	for i, result := range results {
		r.Results[i].FromModel(result)
	}
}

type BookingResponse struct {
	BookingID    int64  `json:"booking_id"`
	GuestID      int64  `json:"guest_id"`
	RoomID       int64  `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	TotalCost    string `json:"total_cost"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.BookingID = model.ID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.CheckInDate = timezone.FormatDate(model.CheckInDate)
	r.CheckOutDate = timezone.FormatDate(model.CheckOutDate)
	r.TotalCost = model.TotalCost.StringFixed(constant.MoneyPlaces)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingFilter narrows a booking listing; zero fields are ignored.
type BookingFilter struct {
	RoomID  int64
	GuestID int64
}
