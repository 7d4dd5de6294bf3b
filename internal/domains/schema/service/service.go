package service

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	queryDatabaseExists = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
)

type (
	// Connector opens a connection to the server's maintenance database.
	Connector func(config config.Config) (*sqlx.DB, error)
	// Migrator applies the embedded migrations to the application database
	// and stops early when ctx is done.
	Migrator func(ctx context.Context, config *config.Config) error
	Option   func(*serviceImpl)
)

type Schema interface {
	EnsureDatabase(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
}

type serviceImpl struct {
	cfg     *config.Config
	otel    otel.Otel
	connect Connector
	migrate Migrator
}

func WithConnector(connect Connector) Option {
	return func(s *serviceImpl) {
		s.connect = connect
	}
}

func WithMigrator(migrate Migrator) Option {
	return func(s *serviceImpl) {
		s.migrate = migrate
	}
}

func New(cfg *config.Config, otel otel.Otel, opts ...Option) Schema {
	svc := &serviceImpl{
		cfg:     cfg,
		otel:    otel,
		connect: postgres.CreateMaintenanceConn,
		migrate: helper.Up,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// EnsureDatabase creates the application database when the server does not
// have it yet. Losing a creation race to another provisioner counts as success.
func (s *serviceImpl) EnsureDatabase(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureDatabase")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	name := postgres.DBName(*s.cfg, s.cfg.DB.Postgres.Write.Name)
	scope.SetAttribute("db.name", name)

	db, err := s.connect(*s.cfg)
	if err != nil {
		log.Error().Err(err).Str("dbName", name).Msg("failed to connect to maintenance database")

		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer db.Close()

	exists := false
	if err = db.GetContext(ctx, &exists, queryDatabaseExists, name); err != nil {
		log.Error().Err(err).Str("dbName", name).Msg("failed to check if database exists")

		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		log.Info().Str("dbName", name).Msg("database already exists")

		return nil
	}

	// CREATE DATABASE takes no bind parameters.
	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		if failure.IsAlreadyExists(err) {
			log.Info().Str("dbName", name).Msg("database created by a concurrent provisioner")

			return nil
		}

		log.Error().Err(err).Str("dbName", name).Msg("failed to create database")

		return fmt.Errorf("failed to create database %s: %w", name, err)
	}

	log.Info().Str("dbName", name).Msg("database created")

	return nil
}

// EnsureSchema is safe to call any number of times against a store in any
// prior state: absent, partially provisioned or complete.
func (s *serviceImpl) EnsureSchema(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureSchema")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.EnsureDatabase(ctx); err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("schema provisioning cancelled: %w", err)
	}

	if err = s.migrate(ctx, s.cfg); err != nil {
		log.Error().Err(err).Bool("conflict", errors.Is(err, failure.ErrSchemaConflict)).Msg("failed to apply schema migrations")

		return fmt.Errorf("failed to apply schema migrations: %w", err)
	}

	log.Info().Msg("schema is up to date")

	return nil
}
