package postgres

//nolint:revive
import (
	"fmt"
	"hotel/config"
	"hotel/shared/failure"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName                = "postgres"
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) (*Connection, error) {
	write, err := CreatePostgresWriteConn(*config)
	if err != nil {
		return nil, err
	}

	read, err := CreatePostgresReadConn(*config)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	return &Connection{
		Read:  read,
		Write: write,
	}, nil
}

// Close releases both pools. Read and Write may point at the same server.
func (c *Connection) Close() error {
	readErr := c.Read.Close()
	writeErr := c.Write.Close()

	if writeErr != nil {
		return fmt.Errorf("closing write pool: %w", writeErr)
	}

	if readErr != nil {
		return fmt.Errorf("closing read pool: %w", readErr)
	}

	return nil
}

// DBName returns the database name with prefix if configured
func DBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN builds a lib/pq connection URL for the given endpoint and database.
func DSN(endpoint config.Postgres, dbName string) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(endpoint.SSLMode),
	}

	return dsn.String()
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) (*sqlx.DB, error) {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write,
		DBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) (*sqlx.DB, error) {
	endpoint := config.DB.Postgres.Read
	if endpoint.Host == "" {
		endpoint = config.DB.Postgres.Write
	}

	return CreatePostgresConnection(
		"read",
		endpoint,
		DBName(config, endpoint.Name),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreateMaintenanceConn connects to the server's maintenance database, used to
// create the application database when it does not exist yet.
func CreateMaintenanceConn(config config.Config) (*sqlx.DB, error) {
	return CreatePostgresConnection(
		"maintenance",
		config.DB.Postgres.Write,
		config.DB.Postgres.MaintenanceDB,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(name string, endpoint config.Postgres, dbName string, maxRetry, waitTime int) (*sqlx.DB, error) {
	descriptor := DSN(endpoint, dbName)

	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Str("port", endpoint.Port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w: %s database %s: %w", failure.ErrConnection, name, dbName, lastErr)
}
