package service_test

//nolint:revive
import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	guestRepo "hotel/internal/domains/guest/repository"
	hotelRepo "hotel/internal/domains/hotel/repository"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/internal/domains/seed/service"
	"hotel/migrations"
	"hotel/shared/cache"
)

const envIntegrationDSN = "HOTEL_TEST_POSTGRES_DSN"

type store struct {
	seed    service.Seed
	booking bookingService.Booking
}

// newStore resets the schema of the database named by HOTEL_TEST_POSTGRES_DSN
// and wires the real repositories against it.
func newStore(t *testing.T) *store {
	t.Helper()

	dsn := os.Getenv(envIntegrationDSN)
	if dsn == "" {
		t.Skipf("%s not set", envIntegrationDSN)
	}

	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	require.NoError(t, err)

	mig, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	require.NoError(t, err)

	if err = mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	require.NoError(t, mig.Up())

	srcErr, dbErr := mig.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := &postgres.Connection{Read: db, Write: db}
	tracer := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Admission.MaxBatchSize = 100
	cfg.Cache.TTL = 60

	rooms := roomRepo.New(conn, tracer)
	guests := guestRepo.New(conn, tracer)
	booking := bookingService.New(conn, bookingRepo.New(conn, tracer), rooms, guests, cfg, cache.New(nil, tracer), kafka.New(cfg), tracer)

	return &store{
		seed:    service.New(hotelRepo.New(conn, tracer), rooms, guests, booking, tracer),
		booking: booking,
	}
}

func TestIntegration_SeedTwice(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first, err := s.seed.Seed(ctx, dataset())
	require.NoError(t, err)
	assert.Equal(t, 4, first.TotalInserted())

	second, err := s.seed.Seed(ctx, dataset())
	require.NoError(t, err)
	assert.Zero(t, second.TotalInserted())
	assert.Equal(t, 1, second.Hotels.Skipped)
	assert.Equal(t, 1, second.Rooms.Skipped)
	assert.Equal(t, 1, second.Guests.Skipped)
	assert.Equal(t, 1, second.Bookings.Skipped)
}

func TestIntegration_ConcurrentAdmissionsForOneRoom(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	data := dataset()
	data.Bookings = nil

	_, err := s.seed.Seed(ctx, data)
	require.NoError(t, err)

	const workers = 8

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)

	checkIn := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req := bookingModel.BookingRequest{
				GuestID:      1,
				RoomID:       1,
				CheckInDate:  checkIn.AddDate(0, 0, i%2),
				CheckOutDate: checkIn.AddDate(0, 0, 3),
			}

			results, err := s.booking.Admit(ctx, []bookingModel.BookingRequest{req})
			if !assert.NoError(t, err) || !assert.Len(t, results, 1) {
				return
			}

			if results[0].Status == bookingModel.StatusAdmitted {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, admitted)
}
