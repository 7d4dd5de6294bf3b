package booking

import (
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AdmitBookings)
		routerGroup.Get("/", handler.GetBookings)
	})
}

// AdmitBookings decides a batch of booking requests.
// @Summary Admit bookings
// @Description Each request is admitted or rejected on its own; rejections are returned as results.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.AdmitRequest true "Booking requests"
// @Success 200 {object} response.Data[dto.AdmitResponse] "Admission results in request order"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.DataError[dto.AdmitResponse] "Requests decided before the failure, if any"
// @Failure 503 {object} response.DataError[dto.AdmitResponse] "Requests decided before the failure, if any"
// @Router /v1/bookings [post]
func (handler *Handler) AdmitBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdmitBookings")
	defer scope.End()

	req := dto.AdmitRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reqs, err := req.ToModels()
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	results, err := handler.service.Admit(ctx, reqs)

	res := dto.AdmitResponse{}
	res.FromModels(results)

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("decided", len(results)).Int("requested", len(reqs)).Msg("failed to admit bookings")

		// Requests decided before err are already committed.
		if len(results) > 0 {
			response.WithPartial(writer, err, res)

			return
		}

		response.WithError(writer, err)

		return
	}

	scope.AddEvent(fmt.Sprintf("%d booking requests decided", len(results)))

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookings lists bookings.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query integer false "Filter by room ID"
// @Param guest_id query integer false "Filter by guest ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.BookingFilter{}

	var err error

	if filter.RoomID, err = ParseID(r.URL.Query().Get(model.FieldRoomID)); err != nil {
		response.WithError(w, failure.BadRequestFromString("room_id must be a positive integer"))

		return
	}

	if filter.GuestID, err = ParseID(r.URL.Query().Get(model.FieldGuestID)); err != nil {
		response.WithError(w, failure.BadRequestFromString("guest_id must be a positive integer"))

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

var errInvalidID = errors.New("id must be a positive integer")

// ParseID reads an optional identifier; an empty value yields zero.
func ParseID(value string) (int64, error) {
	if value == constant.Empty {
		return 0, nil
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}

	return id, nil
}
