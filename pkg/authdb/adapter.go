package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserDatabase adapts the authentication framework's user storage contract
// to bun. It holds no state between calls beyond the handles given at
// construction, so one instance per request/session is safe without
// coordination; all transactional behavior is the session's.
//
// Every mutating operation commits immediately and re-reads the affected
// rows, so returned entities reflect whatever the store generated. Driver
// and constraint errors pass through to the caller untranslated.
type UserDatabase[T comparable] struct {
	db    bun.IDB
	newID func() T
	oauth bool
}

// NewUserDatabase returns an adapter without OAuth account support; the
// OAuth operations on it fail with ErrOAuthNotSupported. newID generates
// identifiers for created rows and may be nil when the caller supplies ids
// in the field map (or the store generates them).
func NewUserDatabase[T comparable](db bun.IDB, newID func() T) *UserDatabase[T] {
	return &UserDatabase[T]{db: db, newID: newID}
}

// NewUserDatabaseWithOAuth returns an adapter that also manages the user's
// linked OAuth accounts and eager-loads them on every user lookup.
func NewUserDatabaseWithOAuth[T comparable](db bun.IDB, newID func() T) *UserDatabase[T] {
	return &UserDatabase[T]{db: db, newID: newID, oauth: true}
}

// NewUUIDUserDatabase is the default instantiation: uuid primary keys with
// OAuth account support.
func NewUUIDUserDatabase(db bun.IDB) *UserDatabase[uuid.UUID] {
	return NewUserDatabaseWithOAuth(db, NewUUID)
}

// Get looks a user up by id. Absence is a nil result, not an error.
func (d *UserDatabase[T]) Get(ctx context.Context, id T) (*User[T], error) {
	return d.getUser(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("u.id = ?", id)
	})
}

// GetByEmail looks a user up by email, case-insensitively: both sides are
// lower-cased before comparison, so the stored casing does not matter.
func (d *UserDatabase[T]) GetByEmail(ctx context.Context, email string) (*User[T], error) {
	return d.getUser(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(u.email) = LOWER(?)", email)
	})
}

// GetByOAuthAccount resolves the user owning the (provider, provider account
// id) identity, the lookup performed during an OAuth login.
func (d *UserDatabase[T]) GetByOAuthAccount(ctx context.Context, oauthName, accountID string) (*User[T], error) {
	if !d.oauth {
		return nil, ErrOAuthNotSupported
	}
	return d.getUser(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Join("JOIN oauth_accounts AS oac ON oac.user_id = u.id").
			Where("oac.oauth_name = ?", oauthName).
			Where("oac.account_id = ?", accountID)
	})
}

// Create builds a user from a column-name-to-value map, persists it, and
// returns the re-read row. is_active defaults to true and the superuser and
// verified flags to false when the map omits them, matching the schema's
// declared defaults.
func (d *UserDatabase[T]) Create(ctx context.Context, fields map[string]any) (*User[T], error) {
	user := &User[T]{IsActive: true}
	if d.newID != nil {
		user.ID = d.newID()
	}
	if err := applyFields(user, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: create user: %w", err)
	}
	return d.Get(ctx, user.ID)
}

// Update overwrites the named columns on an existing user and persists the
// whole row. Columns absent from the map keep their current values.
func (d *UserDatabase[T]) Update(ctx context.Context, user *User[T], fields map[string]any) (*User[T], error) {
	if err := applyFields(user, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewUpdate().Model(user).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: update user: %w", err)
	}
	return d.Get(ctx, user.ID)
}

// Delete physically removes the user. Linked OAuth accounts go with it via
// the schema's cascade; there is no soft delete.
func (d *UserDatabase[T]) Delete(ctx context.Context, user *User[T]) error {
	if _, err := d.db.NewDelete().Model(user).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("authdb: delete user: %w", err)
	}
	return nil
}

// AddOAuthAccount links a new third-party identity to the user and returns
// the user re-read with the updated account collection.
func (d *UserDatabase[T]) AddOAuthAccount(ctx context.Context, user *User[T], fields map[string]any) (*User[T], error) {
	if !d.oauth {
		return nil, ErrOAuthNotSupported
	}

	account := new(OAuthAccount[T])
	if d.newID != nil {
		account.ID = d.newID()
	}
	account.UserID = user.ID
	if err := applyFields(account, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: add oauth account: %w", err)
	}
	return d.Get(ctx, user.ID)
}

// UpdateOAuthAccount overwrites the named columns on one of the user's
// linked accounts, typically to rotate tokens after a refresh.
func (d *UserDatabase[T]) UpdateOAuthAccount(ctx context.Context, user *User[T], account *OAuthAccount[T], fields map[string]any) (*User[T], error) {
	if !d.oauth {
		return nil, ErrOAuthNotSupported
	}

	if err := applyFields(account, fields); err != nil {
		return nil, err
	}

	if _, err := d.db.NewUpdate().Model(account).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("authdb: update oauth account: %w", err)
	}
	return d.Get(ctx, user.ID)
}

// getUser runs a single-row user select. Zero rows maps to (nil, nil);
// when more than one row matches, the first wins.
func (d *UserDatabase[T]) getUser(ctx context.Context, apply func(*bun.SelectQuery) *bun.SelectQuery) (*User[T], error) {
	user := new(User[T])
	q := d.db.NewSelect().Model(user)
	if d.oauth {
		q = q.Relation("OAuthAccounts")
	}

	err := apply(q).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
