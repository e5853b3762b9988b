package authdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quatton/authdb/pkg/kv"
)

const tokenKeyPrefix = "authdb:token:"

// KVAccessTokenStore persists access tokens in a key-value store instead of
// SQL, for deployments that want token lookups off the relational path. It
// satisfies the same contract as AccessTokenDatabase; expiry is enforced
// twice, by the store's TTL and by the notBefore filter on reads.
type KVAccessTokenStore[T comparable] struct {
	store kv.Store
	ttl   time.Duration
}

// NewKVAccessTokenStore wraps a kv.Store. ttl bounds each token's lifetime
// in the store; 0 means tokens only expire via the notBefore read filter.
func NewKVAccessTokenStore[T comparable](store kv.Store, ttl time.Duration) *KVAccessTokenStore[T] {
	return &KVAccessTokenStore[T]{store: store, ttl: ttl}
}

type kvTokenRecord[T comparable] struct {
	UserID    T         `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Create persists the token. A zero CreatedAt is stamped with now.
func (s *KVAccessTokenStore[T]) Create(ctx context.Context, at *AccessToken[T]) error {
	if at.CreatedAt.IsZero() {
		at.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(kvTokenRecord[T]{UserID: at.UserID, CreatedAt: at.CreatedAt})
	if err != nil {
		return fmt.Errorf("authdb: encode access token: %w", err)
	}
	return s.store.Set(ctx, tokenKeyPrefix+at.Token, payload, s.ttl)
}

// GetByToken returns the stored token, or nil when it is absent, expired
// out of the store, or older than a non-zero notBefore.
func (s *KVAccessTokenStore[T]) GetByToken(ctx context.Context, token string, notBefore time.Time) (*AccessToken[T], error) {
	data, err := s.store.Get(ctx, tokenKeyPrefix+token)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec kvTokenRecord[T]
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("authdb: decode access token: %w", err)
	}
	if !notBefore.IsZero() && rec.CreatedAt.Before(notBefore) {
		return nil, nil
	}
	return &AccessToken[T]{Token: token, UserID: rec.UserID, CreatedAt: rec.CreatedAt}, nil
}

// Delete removes the token. Deleting an absent token is not an error.
func (s *KVAccessTokenStore[T]) Delete(ctx context.Context, token string) error {
	return s.store.Delete(ctx, tokenKeyPrefix+token)
}
