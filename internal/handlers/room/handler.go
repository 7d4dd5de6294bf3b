package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/internal/handlers/booking"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	bookingService service.Booking
	otel           otel.Otel
}

func New(bookingService service.Booking, otel otel.Otel) Handler {
	return Handler{
		bookingService: bookingService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}/bookings", handler.GetRoomBookings)
	})
}

// GetRoomBookings lists the bookings of one room.
// @Summary Get bookings of a room
// @Description Retrieve the bookings held on a room, newest first unless sorted otherwise.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path integer true "Room ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/bookings [get]
func (handler *Handler) GetRoomBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomBookings")
	defer scope.End()

	roomID, err := booking.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil || roomID == 0 {
		response.WithError(w, failure.BadRequestFromString("room id must be a positive integer"))

		return
	}

	scope.SetAttribute("room.id", roomID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.bookingService.GetAll(ctx, queryParams, dto.BookingFilter{RoomID: roomID})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to get room bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}
