package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// AccessTokenDatabase adapts the authentication framework's access-token
// storage contract to bun. Same semantics as UserDatabase: immediate
// commits, re-read after every mutation, nil result for absence.
type AccessTokenDatabase[T comparable] struct {
	db bun.IDB
}

func NewAccessTokenDatabase[T comparable](db bun.IDB) *AccessTokenDatabase[T] {
	return &AccessTokenDatabase[T]{db: db}
}

// GetByToken looks a token up by its value. A non-zero notBefore excludes
// tokens created earlier, which is how the caller enforces a max age.
func (d *AccessTokenDatabase[T]) GetByToken(ctx context.Context, token string, notBefore time.Time) (*AccessToken[T], error) {
	at := new(AccessToken[T])
	q := d.db.NewSelect().Model(at).Where("atk.token = ?", token)
	if !notBefore.IsZero() {
		q = q.Where("atk.created_at >= ?", notBefore)
	}

	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return at, nil
}

// Create builds a token row from a column-name-to-value map and persists
// it. created_at defaults to now when the map omits it.
func (d *AccessTokenDatabase[T]) Create(ctx context.Context, fields map[string]any) (*AccessToken[T], error) {
	at := &AccessToken[T]{CreatedAt: time.Now().UTC()}
	if err := applyFields(at, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewInsert().Model(at).Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: create access token: %w", err)
	}
	return d.GetByToken(ctx, at.Token, time.Time{})
}

// Update overwrites the named columns on an existing token row.
func (d *AccessTokenDatabase[T]) Update(ctx context.Context, at *AccessToken[T], fields map[string]any) (*AccessToken[T], error) {
	if err := applyFields(at, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewUpdate().Model(at).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: update access token: %w", err)
	}
	return d.GetByToken(ctx, at.Token, time.Time{})
}

// Delete removes the token row.
func (d *AccessTokenDatabase[T]) Delete(ctx context.Context, at *AccessToken[T]) error {
	if _, err := d.db.NewDelete().Model(at).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("authdb: delete access token: %w", err)
	}
	return nil
}
