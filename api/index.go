package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/timezone"
	"hotel/transport/http/response"
	"net/http"

	"github.com/rs/zerolog/log"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	handler, cleanup, err := di.InitializeService()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize service")
		response.WithError(w, err)

		return
	}
	defer cleanup()

	handler.ServeHTTP(w, r)
}
