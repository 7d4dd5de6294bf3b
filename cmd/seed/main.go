package main

import (
	"context"
	"flag"
	"hotel/config"
	"hotel/di"
	"hotel/internal/domains/seed/model"
	"hotel/internal/domains/seed/model/dto"
	"hotel/shared/logger"
	"hotel/shared/timezone"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

func main() {
	path := flag.String("file", "seed.yaml", "dataset file, .json or .yaml")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	dataset, err := dto.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("Failed to load dataset")
	}

	seeder, cleanup, err := di.InitializeSeeder()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize seeder")
	}
	defer cleanup()

	report, err := seeder.Seed(context.Background(), dataset)

	printReport(report)

	if err != nil {
		log.Error().Err(err).Msg("Seeding stopped")
		cleanup()
		os.Exit(1)
	}

	log.Info().Int("inserted", report.TotalInserted()).Int("skipped", len(report.Skipped)).Msg("Seeding completed")
}

func printReport(report model.SeedReport) {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()

	if err := encoder.Encode(report); err != nil {
		log.Error().Err(err).Msg("Failed to print seed report")
	}
}
