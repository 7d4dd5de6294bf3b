package redis

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/shared/failure"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary Redis. It returns a nil client when caching is
// disabled so callers fall back to their no-op paths.
func New(config *config.Config) (*goRedis.Client, error) {
	if !config.Cache.Redis.Enable {
		log.Info().Msg("Redis disabled, caching and rate limiting are off")

		return nil, nil //nolint:nilnil
	}

	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error().Err(err).Str("host", primary.Host).Str("port", primary.Port).Msg("Failed to connect to Redis")

		_ = client.Close()

		return nil, fmt.Errorf("%w: redis %s: %w", failure.ErrConnection, primary.Host, err)
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, nil
}
