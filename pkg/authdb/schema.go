package authdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates the users, oauth_accounts and access_tokens tables
// with their cascade foreign keys and secondary indexes. It is idempotent
// and is the schema path for sqlite and tests; postgres deployments go
// through the migrations package instead.
func CreateTables[T comparable](ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User[T])(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("authdb: create users table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*OAuthAccount[T])(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES users ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("authdb: create oauth_accounts table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*AccessToken[T])(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES users ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("authdb: create access_tokens table: %w", err)
	}

	indexes := []struct {
		model any
		name  string
		col   string
	}{
		{(*OAuthAccount[T])(nil), "oauth_accounts_oauth_name_idx", "oauth_name"},
		{(*OAuthAccount[T])(nil), "oauth_accounts_account_id_idx", "account_id"},
		{(*AccessToken[T])(nil), "access_tokens_created_at_idx", "created_at"},
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.col).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("authdb: create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// DropTables removes the three tables, dependents first.
func DropTables[T comparable](ctx context.Context, db *bun.DB) error {
	for _, model := range []any{
		(*AccessToken[T])(nil),
		(*OAuthAccount[T])(nil),
		(*User[T])(nil),
	} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("authdb: drop table: %w", err)
		}
	}
	return nil
}
