package store

import (
	"context"
	"testing"

	"github.com/erazemk/tacka/internal/db"
)

func TestGetJWTSecretGeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestEnsureSettingKeepsFirstValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, _ := EnsureSetting(ctx, database, "greeting", "zdravo")
	if got != "zdravo" {
		t.Errorf("expected 'zdravo', got %q", got)
	}
	got, _ = EnsureSetting(ctx, database, "greeting", "hello")
	if got != "zdravo" {
		t.Errorf("expected stored value to win, got %q", got)
	}
}
