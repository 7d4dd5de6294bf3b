package main

import (
	"context"
	"flag"
	"fmt"
	"hotel/config"
	"hotel/di"
	"hotel/internal/domains/report/service"
	"hotel/shared/logger"
	"hotel/shared/timezone"
	"os"

	"github.com/rs/zerolog/log"
)

const filePermission = 0o644

func main() {
	path := flag.String("out", "revenue.yaml", "report file to write")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	reporter, cleanup, err := di.InitializeReporter()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize reporter")
	}
	defer cleanup()

	ctx := context.Background()

	if err := writeReport(ctx, reporter, *path); err != nil {
		log.Error().Err(err).Str("file", *path).Msg("Failed to write revenue report")
		cleanup()
		os.Exit(1)
	}

	log.Info().Str("file", *path).Msg("Revenue report written")

	if cfg.External.S3.BucketName == "" {
		return
	}

	key, err := reporter.Upload(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload revenue report")
		cleanup()
		os.Exit(1)
	}

	log.Info().Str("key", key).Msg("Revenue report uploaded")
}

func writeReport(ctx context.Context, reporter service.Report, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	if err := reporter.Export(ctx, file); err != nil {
		return fmt.Errorf("failed to export revenue report: %w", err)
	}

	return nil
}
