package di

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"time"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

func provideConnection(cfg *config.Config) (*postgres.Connection, func(), error) {
	conn, err := postgres.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return conn, func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connections")
		}
	}, nil
}

func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writer")
		}
	}
}

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	tracer := otel.New(cfg)

	return tracer, func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()

		if err := tracer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush spans")
		}
	}
}
