// Package migrations embeds the versioned schema so provisioning does not
// depend on the working directory of the process.
package migrations

import "embed"

// Postgres holds the golang-migrate files for the hotel schema. Every up
// migration is written with IF NOT EXISTS so it converges on a store that
// already holds some of the objects.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
