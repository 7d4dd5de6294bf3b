package helper

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"hotel/migrations"
	"hotel/shared/failure"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var errUnknownAction = errors.New("unknown migration action")

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	connectionString := postgres.DSN(config.DB.Postgres.Write, postgres.DBName(*config, config.DB.Postgres.Write.Name)) +
		"&x-migrations-table=" + url.QueryEscape(config.DB.Postgres.MigrationTable)

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating migrate instance: %w", failure.ErrConnection, err)
	}

	return mig, nil
}

// migrator is the part of *migrate.Migrate that applying up migrations needs.
type migrator interface {
	Up() error
	Force(version int) error
}

// maxUpAttempts bounds the up runs of one call. Each conflicting version costs
// two: the failed run and the run that resets it.
const maxUpAttempts = 6

// recoverDirty moves a version left dirty by an interrupted run back to the
// last clean one. The up migrations only create missing objects, so applying
// the dirty version again is safe.
func recoverDirty(mig migrator, err error) bool {
	var dirty migrate.ErrDirty
	if !errors.As(err, &dirty) {
		return false
	}

	log.Warn().Int("version", dirty.Version).Msg("Schema version is dirty, re-applying it")

	previous := dirty.Version - 1
	if previous < 1 {
		previous = database.NilVersion
	}

	if forceErr := mig.Force(previous); forceErr != nil {
		log.Error().Err(forceErr).Int("version", dirty.Version).Msg("Failed to reset dirty schema version")

		return false
	}

	return true
}

// stopOnDone asks mig to stop after its current migration once ctx is done.
func stopOnDone(ctx context.Context, gracefulStop chan<- bool) func() bool {
	return context.AfterFunc(ctx, func() {
		select {
		case gracefulStop <- true:
		default:
		}
	})
}

// up applies every pending migration. A migration that fails because its
// objects already exist leaves its version dirty; that version is reset and
// applied again so later versions still run.
func up(ctx context.Context, mig migrator) error {
	var err, conflict error

	for range maxUpAttempts {
		err = mig.Up()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("migrations stopped: %w", ctxErr)
		}

		switch {
		case err == nil, errors.Is(err, migrate.ErrNoChange):
			return nil
		case failure.IsAlreadyExists(err):
			log.Warn().Err(err).Msg("Schema object already exists, retrying migrations")

			conflict = err

			continue
		case recoverDirty(mig, err):
			continue
		}

		return fmt.Errorf("error running migrations: %w", err)
	}

	if conflict != nil {
		return fmt.Errorf("%w: %w", failure.ErrSchemaConflict, conflict)
	}

	return fmt.Errorf("error running migrations: %w", err)
}

// Runner performs action on the application database. Cancelling ctx stops the
// run after the migration in flight.
func Runner(ctx context.Context, config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	stop := stopOnDone(ctx, mig.GracefulStop)
	defer stop()

	switch action {
	case ActionUp:
		if err := up(ctx, mig); err != nil {
			return err
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownAction, action)
}

func Up(ctx context.Context, config *config.Config) error {
	return Runner(ctx, config, ActionUp)
}
