// Package migrations holds the bun migration set for the default uuid
// schema. Postgres deployments run it via db.Migrate; sqlite and tests use
// authdb.CreateTables directly.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
