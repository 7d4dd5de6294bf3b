package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	if err := http.Serve(); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped")
	}
}
