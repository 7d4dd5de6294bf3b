package booking_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	serviceMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/booking"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockBooking) {
	t.Helper()

	svc := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

type admitBody struct {
	Data dto.AdmitResponse `json:"data"`
}

func TestHandler_AdmitBookings(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Admit(gomock.Any(), gomock.Len(2)).
		Return([]model.AdmissionResult{
			model.Rejected(model.ReasonBookingConflict),
			model.Admitted(7, decimal.NewFromInt(240)),
		}, nil)

	body := `{"bookings":[
		{"guest_id":2,"room_id":101,"check_in_date":"2024-03-05","check_out_date":"2024-03-08"},
		{"guest_id":2,"room_id":101,"check_in_date":"2024-03-06","check_out_date":"2024-03-08"}
	]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var res admitBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Data.Results, 2)

	assert.Equal(t, dto.AdmissionResponse{Status: "rejected", Reason: "booking_conflict", Message: "room already booked for the requested dates"}, res.Data.Results[0])
	assert.Equal(t, dto.AdmissionResponse{Status: "admitted", BookingID: 7, TotalCost: "240.00"}, res.Data.Results[1])
}

func TestHandler_AdmitBookingsErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *serviceMocks.MockBooking)
		wantCode  int
	}{
		{
			name:      "malformed json",
			body:      `{"bookings":`,
			setupMock: func(_ *serviceMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty batch",
			body:      `{"bookings":[]}`,
			setupMock: func(_ *serviceMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "bad date",
			body:      `{"bookings":[{"guest_id":1,"room_id":1,"check_in_date":"2024-13-01","check_out_date":"2024-03-08"}]}`,
			setupMock: func(_ *serviceMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "store unreachable",
			body: `{"bookings":[{"guest_id":1,"room_id":1,"check_in_date":"2024-03-01","check_out_date":"2024-03-08"}]}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Admit(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("failed to admit booking 0: %w", failure.ErrConnection))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "concurrent transaction",
			body: `{"bookings":[{"guest_id":1,"room_id":1,"check_in_date":"2024-03-01","check_out_date":"2024-03-08"}]}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Admit(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("failed to admit booking 0: %w", failure.ErrTransactionConflict))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

type partialBody struct {
	Data  dto.AdmitResponse `json:"data"`
	Error string            `json:"error"`
}

func TestHandler_AdmitBookingsStoppedEarly(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "store lost after first commit",
			err:      fmt.Errorf("failed to admit booking 1: %w", failure.ErrConnection),
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "concurrent transaction after first commit",
			err:      fmt.Errorf("failed to admit booking 1: %w", failure.ErrTransactionConflict),
			wantCode: http.StatusConflict,
		},
	}

	body := `{"bookings":[
		{"guest_id":2,"room_id":101,"check_in_date":"2024-03-05","check_out_date":"2024-03-08"},
		{"guest_id":3,"room_id":102,"check_in_date":"2024-03-05","check_out_date":"2024-03-08"}
	]}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			svc.EXPECT().Admit(gomock.Any(), gomock.Len(2)).
				Return([]model.AdmissionResult{model.Admitted(7, decimal.NewFromInt(240))}, tt.err)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body)))

			require.Equal(t, tt.wantCode, rec.Code)

			var res partialBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

			assert.Equal(t, tt.err.Error(), res.Error)
			assert.Equal(t, []dto.AdmissionResponse{{Status: "admitted", BookingID: 7, TotalCost: "240.00"}}, res.Data.Results)
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 5}, dto.BookingFilter{RoomID: 101, GuestID: 3}).
		Return(dto.GetBookingsResponse{TotalData: 6, TotalPage: 2}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/?room_id=101&guest_id=3&page=2&limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_data":6`)
}

func TestHandler_GetBookingsBadFilter(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/?room_id=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetBookingsServiceError(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetBookingsResponse{}, errors.New("boom"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "", want: 0},
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := booking.ParseID(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
