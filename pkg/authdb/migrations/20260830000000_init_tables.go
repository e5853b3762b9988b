package migrations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/quatton/authdb/pkg/authdb"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [up migration] ")
		return authdb.CreateTables[uuid.UUID](ctx, db)
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Print(" [down migration] ")
		return authdb.DropTables[uuid.UUID](ctx, db)
	})
}
