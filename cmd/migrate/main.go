package main

import (
	"context"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/internal/domains/schema/service"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

const (
	argLength    = 2
	actionEnsure = "ensure"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action (ensure/up/down/step-up/drop) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	action := os.Args[1]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch action {
	case actionEnsure:
		schema := service.New(cfg, otel.New(cfg))
		if err := schema.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to provision schema")
		}
	case helper.ActionUp, helper.ActionDown, helper.ActionStepUp, helper.ActionDrop:
		if err := helper.Runner(ctx, cfg, action); err != nil {
			log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
		}
	default:
		log.Fatal().Str("action", action).Msg("Invalid action. Use 'ensure', 'up', 'down', 'drop' or 'step-up'")
	}
}
