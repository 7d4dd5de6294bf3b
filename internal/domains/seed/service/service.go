package service

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingService "hotel/internal/domains/booking/service"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	hotelModel "hotel/internal/domains/hotel/model"
	hotelRepo "hotel/internal/domains/hotel/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/internal/domains/seed/model"
	"hotel/internal/domains/seed/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

type Seed interface {
	// Seed inserts every record of dataset that is not already present. Records
	// that cannot be inserted are skipped and listed in the report; only
	// infrastructure errors abort the run.
	Seed(ctx context.Context, dataset dto.Dataset) (model.SeedReport, error)
}

type serviceImpl struct {
	hotelRepo hotelRepo.Hotel
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	booking   bookingService.Booking
	otel      otel.Otel
}

func New(
	hotelRepo hotelRepo.Hotel,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	booking bookingService.Booking,
	otel otel.Otel,
) Seed {
	return &serviceImpl{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		booking:   booking,
		otel:      otel,
	}
}

func (s *serviceImpl) Seed(ctx context.Context, dataset dto.Dataset) (report model.SeedReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"seed.hotels":   len(dataset.Hotels),
		"seed.rooms":    len(dataset.Rooms),
		"seed.guests":   len(dataset.Guests),
		"seed.bookings": len(dataset.Bookings),
	})

	if err = s.seedHotels(ctx, dataset.Hotels, &report); err != nil {
		return report, err
	}

	if err = s.seedRooms(ctx, dataset.Rooms, &report); err != nil {
		return report, err
	}

	if err = s.seedGuests(ctx, dataset.Guests, &report); err != nil {
		return report, err
	}

	if err = s.seedBookings(ctx, dataset.Bookings, &report); err != nil {
		return report, err
	}

	log.Info().
		Int("hotels", report.Hotels.Inserted).
		Int("rooms", report.Rooms.Inserted).
		Int("guests", report.Guests.Inserted).
		Int("bookings", report.Bookings.Inserted).
		Int("skipped", len(report.Skipped)).
		Msg("seed finished")

	return report, nil
}

func (s *serviceImpl) seedHotels(ctx context.Context, hotels []dto.Hotel, report *model.SeedReport) error {
	for i := range hotels {
		if err := validator.ValidateStruct(&hotels[i]); err != nil {
			skip(report, model.KindHotel, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		_, inserted, err := s.hotelRepo.InsertIfAbsent(ctx, hotels[i].ToModel())
		if err != nil && !failure.IsAlreadyExists(err) {
			log.Error().Err(err).Int("index", i).Msg("failed to seed hotel")

			return fmt.Errorf("failed to seed hotel %d: %w", i, err)
		}

		if !inserted {
			skip(report, model.KindHotel, i, model.ReasonAlreadyPresent, hotels[i].HotelName)

			continue
		}

		report.Inserted(model.KindHotel)
	}

	return nil
}

func (s *serviceImpl) seedRooms(ctx context.Context, rooms []dto.Room, report *model.SeedReport) error {
	for i := range rooms {
		if err := validator.ValidateStruct(&rooms[i]); err != nil {
			skip(report, model.KindRoom, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		room, err := rooms[i].ToModel()
		if err != nil {
			skip(report, model.KindRoom, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		hotelExists, err := s.hotelRepo.Exist(ctx, shared.FilterByID(room.HotelID, hotelModel.FieldID, hotelModel.TableName))
		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("failed to check if hotel exists")

			return fmt.Errorf("failed to seed room %d: %w", i, err)
		}

		if !hotelExists {
			skip(report, model.KindRoom, i, model.ReasonReferenceMissing, referenceMissing("hotel", room.HotelID).Error())

			continue
		}

		_, inserted, err := s.roomRepo.InsertIfAbsent(ctx, room)

		switch {
		case failure.IsForeignKeyViolation(err):
			skip(report, model.KindRoom, i, model.ReasonReferenceMissing, referenceMissing("hotel", room.HotelID).Error())
		case err != nil && !failure.IsAlreadyExists(err):
			log.Error().Err(err).Int("index", i).Msg("failed to seed room")

			return fmt.Errorf("failed to seed room %d: %w", i, err)
		case !inserted:
			skip(report, model.KindRoom, i, model.ReasonAlreadyPresent, fmt.Sprintf("hotel %d room %d", room.HotelID, room.RoomNumber))
		default:
			report.Inserted(model.KindRoom)
		}
	}

	return nil
}

func (s *serviceImpl) seedGuests(ctx context.Context, guests []dto.Guest, report *model.SeedReport) error {
	for i := range guests {
		if err := validator.ValidateStruct(&guests[i]); err != nil {
			skip(report, model.KindGuest, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		_, inserted, err := s.guestRepo.InsertIfAbsent(ctx, guests[i].ToModel())
		if err != nil && !failure.IsAlreadyExists(err) {
			log.Error().Err(err).Int("index", i).Msg("failed to seed guest")

			return fmt.Errorf("failed to seed guest %d: %w", i, err)
		}

		if !inserted {
			skip(report, model.KindGuest, i, model.ReasonAlreadyPresent, guests[i].Email)

			continue
		}

		report.Inserted(model.KindGuest)
	}

	return nil
}

func (s *serviceImpl) seedBookings(ctx context.Context, bookings []dto.Booking, report *model.SeedReport) error {
	for i := range bookings {
		if err := validator.ValidateStruct(&bookings[i]); err != nil {
			skip(report, model.KindBooking, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		req, err := bookings[i].ToModel()
		if err != nil {
			skip(report, model.KindBooking, i, model.ReasonInvalidRecord, err.Error())

			continue
		}

		err = s.checkBookingReferences(ctx, req)

		switch {
		case errors.Is(err, failure.ErrSeedReferenceMissing):
			skip(report, model.KindBooking, i, model.ReasonReferenceMissing, err.Error())

			continue
		case err != nil:
			log.Error().Err(err).Int("index", i).Msg("failed to check booking references")

			return fmt.Errorf("failed to seed booking %d: %w", i, err)
		}

		results, err := s.booking.Admit(ctx, []bookingModel.BookingRequest{req})
		if failure.IsForeignKeyViolation(err) {
			skip(report, model.KindBooking, i, model.ReasonReferenceMissing, fmt.Errorf("%w: %w", failure.ErrSeedReferenceMissing, err).Error())

			continue
		}

		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("failed to seed booking")

			return fmt.Errorf("failed to seed booking %d: %w", i, err)
		}

		result := results[0]
		if rejection := result.Err(); rejection != nil {
			skip(report, model.KindBooking, i, seedReason(rejection), fmt.Sprintf("room %d: %v", req.RoomID, rejection))

			continue
		}

		if expected := bookings[i].TotalCost; expected != nil && !expected.Equal(result.TotalCost) {
			log.Warn().
				Int("index", i).
				Int64("booking_id", result.BookingID).
				Str("dataset_total_cost", expected.StringFixed(constant.MoneyPlaces)).
				Str("total_cost", result.TotalCost.StringFixed(constant.MoneyPlaces)).
				Msg("dataset total cost differs from computed cost, keeping computed cost")
		}

		report.Inserted(model.KindBooking)
	}

	return nil
}

// checkBookingReferences fails with ErrSeedReferenceMissing naming the guest
// or room a booking points at when that row does not exist.
func (s *serviceImpl) checkBookingReferences(ctx context.Context, req bookingModel.BookingRequest) error {
	guestExists, err := s.guestRepo.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return referenceMissing("guest", req.GuestID)
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return referenceMissing("room", req.RoomID)
	}

	return nil
}

func referenceMissing(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", failure.ErrSeedReferenceMissing, entity, id)
}

func seedReason(rejection error) model.Reason {
	switch {
	case errors.Is(rejection, failure.ErrBookingConflict):
		return model.ReasonBookingConflict
	case errors.Is(rejection, failure.ErrInvalidDateRange):
		return model.ReasonInvalidDateRange
	default:
		return model.ReasonReferenceMissing
	}
}

func skip(report *model.SeedReport, kind model.Kind, index int, reason model.Reason, detail string) {
	log.Warn().
		Str("kind", string(kind)).
		Int("index", index).
		Str("reason", string(reason)).
		Str("detail", detail).
		Msg("seed record skipped")

	report.Skip(kind, index, reason, detail)
}
