package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

var sortableColumns = []string{
	model.FieldID,
	model.FieldRoomID,
	model.FieldGuestID,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldTotalCost,
}

type Booking interface {
	// Admit decides every request in order, each in its own transaction.
	// Rejections are results; an infrastructure error stops the batch and the
	// results decided so far are returned with it.
	Admit(ctx context.Context, reqs []model.BookingRequest) ([]model.AdmissionResult, error)
	// AdmitTx decides one request inside tx. It never commits or rolls back.
	AdmitTx(ctx context.Context, tx *sqlx.Tx, req model.BookingRequest) (model.AdmissionResult, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	db        *postgres.Connection
	repo      repository.Booking
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	cfg       *config.Config
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
}

func New(
	db *postgres.Connection,
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		db:        db,
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		cfg:       cfg,
		cache:     cache,
		kafka:     kafka,
		otel:      otel,
	}
}

func (s *serviceImpl) Admit(ctx context.Context, reqs []model.BookingRequest) (results []model.AdmissionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.requests", len(reqs))

	if limit := s.cfg.App.Admission.MaxBatchSize; limit > 0 && len(reqs) > limit {
		return nil, failure.BadRequestFromString(fmt.Sprintf("at most %d bookings per request", limit)) // nolint:wrapcheck
	}

	results = make([]model.AdmissionResult, 0, len(reqs))

	for i, req := range reqs {
		result, err := s.admit(ctx, req)
		if err != nil {
			log.Error().Err(err).Int("index", i).Int64("room_id", req.RoomID).Msg("failed to admit booking")

			return results, fmt.Errorf("failed to admit booking %d: %w", i, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// admit runs one request as its own unit of work.
func (s *serviceImpl) admit(ctx context.Context, req model.BookingRequest) (result model.AdmissionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if timezone.Nights(req.CheckInDate, req.CheckOutDate) <= 0 {
		return s.reject(req, model.ReasonInvalidDateRange), nil
	}

	if timeout := s.cfg.App.Admission.TimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	tx, err := s.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return result, fmt.Errorf("%w: failed to begin transaction: %w", failure.ErrConnection, err)
	}

	result, err = s.AdmitTx(ctx, tx, req)
	if err != nil || !result.IsAdmitted() {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Int64("room_id", req.RoomID).Msg("failed to roll back booking transaction")
		}

		return result, classify(err)
	}

	if err = tx.Commit(); err != nil {
		return model.AdmissionResult{}, fmt.Errorf("failed to commit booking: %w", classify(err))
	}

	s.afterCommit(ctx, req, result)

	return result, nil
}

func (s *serviceImpl) AdmitTx(ctx context.Context, tx *sqlx.Tx, req model.BookingRequest) (result model.AdmissionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdmitTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"booking.room_id":  req.RoomID,
		"booking.guest_id": req.GuestID,
	})

	nights := timezone.Nights(req.CheckInDate, req.CheckOutDate)
	if nights <= 0 {
		return s.reject(req, model.ReasonInvalidDateRange), nil
	}

	price, found, err := s.roomRepo.LockPrice(ctx, tx, req.RoomID)
	if err != nil {
		return result, fmt.Errorf("failed to lock room: %w", err)
	}

	if !found {
		return s.reject(req, model.ReasonRoomNotFound), nil
	}

	guestExists, err := s.guestRepo.ExistTx(ctx, tx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		return result, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return s.reject(req, model.ReasonGuestNotFound), nil
	}

	overlaps, err := s.repo.OverlapsTx(ctx, tx, req.RoomID, timezone.Date(req.CheckInDate), timezone.Date(req.CheckOutDate))
	if err != nil {
		return result, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if overlaps {
		return s.reject(req, model.ReasonBookingConflict), nil
	}

	totalCost := TotalCost(price, nights)

	bookingID, err := s.repo.InsertTx(ctx, tx, model.Booking{
		GuestID:      req.GuestID,
		RoomID:       req.RoomID,
		CheckInDate:  timezone.Date(req.CheckInDate),
		CheckOutDate: timezone.Date(req.CheckOutDate),
		TotalCost:    totalCost,
	})
	if err != nil {
		return result, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().
		Int64("booking_id", bookingID).
		Int64("room_id", req.RoomID).
		Int64("guest_id", req.GuestID).
		Str("total_cost", totalCost.StringFixed(constant.MoneyPlaces)).
		Msg("booking admitted")

	return model.Admitted(bookingID, totalCost), nil
}

// TotalCost is the nightly price times the number of nights, rounded to whole cents.
func TotalCost(pricePerNight decimal.Decimal, nights int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(constant.MoneyPlaces)
}

func (s *serviceImpl) reject(req model.BookingRequest, reason model.Reason) model.AdmissionResult {
	result := model.Rejected(reason)

	log.Info().
		Err(result.Err()).
		Int64("room_id", req.RoomID).
		Int64("guest_id", req.GuestID).
		Str("check_in_date", timezone.FormatDate(req.CheckInDate)).
		Str("check_out_date", timezone.FormatDate(req.CheckOutDate)).
		Str("reason", string(reason)).
		Msg("booking rejected")

	return result
}

// afterCommit announces the booking and drops cached reads it made stale.
// Failures here never undo the admission.
func (s *serviceImpl) afterCommit(ctx context.Context, req model.BookingRequest, result model.AdmissionResult) {
	c := context.WithoutCancel(ctx)

	event := model.NewAdmittedEvent(req, result)
	if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingAdmitted, kafka.Message{Key: event.Key(), Value: event}); err != nil {
		log.Error().Err(err).Int64("booking_id", result.BookingID).Msg("failed to publish admitted booking")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	shared.InvalidateCaches(c, s.cache, constant.CacheKeyRevenueReport)
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	if failure.IsRetryable(err) {
		return fmt.Errorf("%w: %w", failure.ErrTransactionConflict, err)
	}

	return err
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(sortableColumns, req.SortBy) {
		req.SortBy = constant.DefaultValueSortBy
	}

	if req.SortDir == constant.Empty {
		req.SortDir = constant.DefaultValueSortDir
	}

	group := bookingFilter(filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

func bookingFilter(filter dto.BookingFilter) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.RoomID > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    filter.RoomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if filter.GuestID > 0 {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldGuestID,
			Value:    filter.GuestID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return group
}
