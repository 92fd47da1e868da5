// Package migrations embeds the goose SQL migrations for each supported
// server database. Each dialect lives in its own directory.
package migrations

import "embed"

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
