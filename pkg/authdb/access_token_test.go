package authdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/authdb/pkg/authdb"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	database := newTestDB(t)
	users := authdb.NewUUIDUserDatabase(database)
	tokens := authdb.NewAccessTokenDatabase[uuid.UUID](database)
	ctx := context.Background()

	user := mustCreateUser(t, users, map[string]any{
		"email":           "tok@example.com",
		"hashed_password": "x",
	})

	created, err := tokens.Create(ctx, map[string]any{
		"token":   "opaque-token-value",
		"user_id": user.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at should default to now")
	}

	got, err := tokens.GetByToken(ctx, "opaque-token-value", time.Time{})
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got == nil {
		t.Fatal("token should be found")
	}
	if got.UserID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.UserID)
	}

	missing, err := tokens.GetByToken(ctx, "never-issued", time.Time{})
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown token, got %+v", missing)
	}
}

func TestAccessTokenMaxAge(t *testing.T) {
	database := newTestDB(t)
	users := authdb.NewUUIDUserDatabase(database)
	tokens := authdb.NewAccessTokenDatabase[uuid.UUID](database)
	ctx := context.Background()

	user := mustCreateUser(t, users, map[string]any{
		"email":           "old@example.com",
		"hashed_password": "x",
	})

	stale := time.Now().UTC().Add(-2 * time.Hour)
	if _, err := tokens.Create(ctx, map[string]any{
		"token":      "stale-token",
		"user_id":    user.ID,
		"created_at": stale,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Within the age window the token resolves.
	got, err := tokens.GetByToken(ctx, "stale-token", stale.Add(-time.Minute))
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got == nil {
		t.Fatal("token inside the age window should be found")
	}

	// Outside it the token reads as absent.
	expired, err := tokens.GetByToken(ctx, "stale-token", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if expired != nil {
		t.Errorf("token older than max age should read as nil, got %+v", expired)
	}
}

func TestAccessTokenUpdateAndDelete(t *testing.T) {
	database := newTestDB(t)
	users := authdb.NewUUIDUserDatabase(database)
	tokens := authdb.NewAccessTokenDatabase[uuid.UUID](database)
	ctx := context.Background()

	alice := mustCreateUser(t, users, map[string]any{
		"email":           "a@example.com",
		"hashed_password": "x",
	})
	bob := mustCreateUser(t, users, map[string]any{
		"email":           "b@example.com",
		"hashed_password": "x",
	})

	token, err := tokens.Create(ctx, map[string]any{
		"token":   "shared-token",
		"user_id": alice.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	token, err = tokens.Update(ctx, token, map[string]any{
		"user_id": bob.ID,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if token.UserID != bob.ID {
		t.Errorf("expected reassignment to %s, got %s", bob.ID, token.UserID)
	}

	if err := tokens.Delete(ctx, token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := tokens.GetByToken(ctx, "shared-token", time.Time{})
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestDeleteUserCascadesAccessTokens(t *testing.T) {
	database := newTestDB(t)
	users := authdb.NewUUIDUserDatabase(database)
	tokens := authdb.NewAccessTokenDatabase[uuid.UUID](database)
	ctx := context.Background()

	user := mustCreateUser(t, users, map[string]any{
		"email":           "cascade@example.com",
		"hashed_password": "x",
	})
	if _, err := tokens.Create(ctx, map[string]any{
		"token":   "doomed-token",
		"user_id": user.ID,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := users.Delete(ctx, user); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := tokens.GetByToken(ctx, "doomed-token", time.Time{})
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got != nil {
		t.Errorf("token should be gone with its user, got %+v", got)
	}
}
