// Package authdb persists user, OAuth-account, and access-token records
// through bun, exposing the CRUD operations an authentication framework's
// storage interface expects. The entity schemas are generic over the
// identifier type so integer, UUID, or other ID schemes can be substituted
// without touching the adapter logic.
package authdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the base users table definition. T is the identifier type; it must
// be comparable and the adapter must be given a generator for it (see
// NewUserDatabase). The password hash is opaque to this layer.
type User[T comparable] struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             T      `bun:"id,pk"`
	Email          string `bun:"email,type:varchar(320),unique,notnull"`
	HashedPassword string `bun:"hashed_password,type:varchar(1024),notnull"`
	IsActive       bool   `bun:"is_active,notnull"`
	IsSuperuser    bool   `bun:"is_superuser,notnull"`
	IsVerified     bool   `bun:"is_verified,notnull"`

	OAuthAccounts []*OAuthAccount[T] `bun:"rel:has-many,join:id=user_id"`
}

// OAuthAccount is one linked third-party identity for a User. Rows are only
// created and updated through the owning user's adapter calls, and the
// (oauth_name, account_id) pair identifies at most one row during login
// lookup. Deleting the owning user cascades here.
type OAuthAccount[T comparable] struct {
	bun.BaseModel `bun:"table:oauth_accounts,alias:oa"`

	ID           T       `bun:"id,pk"`
	OAuthName    string  `bun:"oauth_name,type:varchar(100),notnull"`
	AccessToken  string  `bun:"access_token,type:varchar(1024),notnull"`
	ExpiresAt    *int64  `bun:"expires_at,nullzero"`
	RefreshToken *string `bun:"refresh_token,type:varchar(1024),nullzero"`
	AccountID    string  `bun:"account_id,type:varchar(320),notnull"`
	AccountEmail string  `bun:"account_email,type:varchar(320),notnull"`
	UserID       T       `bun:"user_id,notnull"`
}

// AccessToken is a server-side login token bound to a user. The token string
// itself is the primary key; it is opaque to this layer (hashing, minting and
// validation belong to the authentication framework).
type AccessToken[T comparable] struct {
	bun.BaseModel `bun:"table:access_tokens,alias:atk"`

	Token     string    `bun:"token,type:varchar(43),pk"`
	UserID    T         `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// UUID instantiations, the default identifier scheme. uuid.UUID implements
// sql.Scanner and driver.Valuer, so the column stores portably across
// postgres and sqlite.
type (
	UUIDUser         = User[uuid.UUID]
	UUIDOAuthAccount = OAuthAccount[uuid.UUID]
	UUIDAccessToken  = AccessToken[uuid.UUID]
)

// NewUUID is the default ID generator for the UUID instantiations.
func NewUUID() uuid.UUID {
	return uuid.New()
}
