package db

import (
	"context"
	"fmt"

	"github.com/quatton/authdb/pkg/authdb/migrations"
	"github.com/quatton/authdb/pkg/logx"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrate applies any pending migrations from the authdb migration set.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log := logx.NewDefault()
	if group.ID == 0 {
		log.Info("database is up to date")
		return nil
	}
	log.Info("applied migrations", "group", group.String())
	return nil
}
