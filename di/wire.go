//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	guestRepository "hotel/internal/domains/guest/repository"
	hotelRepository "hotel/internal/domains/hotel/repository"
	reportRepository "hotel/internal/domains/report/repository"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	seedService "hotel/internal/domains/seed/service"
	bookingHandler "hotel/internal/handlers/booking"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	provideConnection,
	provideKafka,
	provideOtel,
	redis.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var bookingDomain = wire.NewSet(
	roomRepository.New,
	guestRepository.New,
	bookingRepository.New,
	bookingService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	roomHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}

func InitializeSeeder() (seedService.Seed, func(), error) {
	wire.Build(
		configurations,
		provideConnection,
		provideKafka,
		provideOtel,
		redis.New,
		sharedHelpers,
		bookingDomain,
		hotelRepository.New,
		seedService.New,
	)

	return nil, nil, nil
}

func InitializeReporter() (reportService.Report, func(), error) {
	wire.Build(
		configurations,
		provideConnection,
		provideOtel,
		redis.New,
		s3.New,
		sharedHelpers,
		reportDomain,
	)

	return nil, nil, nil
}
