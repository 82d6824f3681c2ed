package store

import (
	"context"
	"testing"

	"github.com/erazemk/foodshare/internal/db"
)

func TestSigningSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	secret1, err := SigningSecret(ctx, database, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	secret2, err := SigningSecret(ctx, database, "")
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestSigningSecret_ConfiguredWins(t *testing.T) {
	database := db.NewTestDB(t)

	secret, err := SigningSecret(context.Background(), database, "from-config")
	if err != nil {
		t.Fatal(err)
	}
	if secret != "from-config" {
		t.Errorf("expected configured secret, got %q", secret)
	}
}
