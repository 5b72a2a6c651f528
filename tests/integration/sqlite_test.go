//go:build integration
// +build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mastrkit/refschema/internal/db"
)

func newSQLiteStore(t *testing.T) *db.SQLiteClient {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.db")

	client, err := db.NewSQLiteClient(ctx, path)
	if err != nil {
		t.Fatalf("Failed to open SQLite database: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSQLiteProvisioning(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteStore(t)

	provisionRegistry(t, ctx, client)
	assertStructureMatches(t, ctx, client)
}

func TestSQLiteIdempotence(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteStore(t)

	provisionRegistry(t, ctx, client)
	// Second run against an already-provisioned store must end in the
	// same structure.
	provisionRegistry(t, ctx, client)
	assertStructureMatches(t, ctx, client)
}

func TestSQLiteUniqueness(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteStore(t)

	provisionRegistry(t, ctx, client)
	assertUniqueIDEnforced(t, ctx, client, "de_energy_source_meta")
	assertNullableName(t, ctx, client, "de_turbine_manufacturer_meta")
}

func TestSQLiteResetDropsRows(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteStore(t)

	provisionRegistry(t, ctx, client)
	if err := client.ExecStatement(ctx, "INSERT INTO de_energy_source_meta (id, name) VALUES (1, 'Wind')"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Re-provisioning is a reset: the row must be gone.
	provisionRegistry(t, ctx, client)
	if err := client.ExecStatement(ctx, "INSERT INTO de_energy_source_meta (id, name) VALUES (1, 'Wind')"); err != nil {
		t.Errorf("Expected id 1 to be free after reset, insert failed: %v", err)
	}
}

func TestSQLiteIsolation(t *testing.T) {
	ctx := context.Background()
	client := newSQLiteStore(t)

	// A table the manifest does not name must survive provisioning.
	if err := client.ExecStatement(ctx, "CREATE TABLE unrelated (payload TEXT)"); err != nil {
		t.Fatalf("Failed to create unrelated table: %v", err)
	}

	provisionRegistry(t, ctx, client)

	exists, err := client.TableExists(ctx, "unrelated")
	if err != nil {
		t.Fatalf("Failed to inspect unrelated table: %v", err)
	}
	if !exists {
		t.Error("Expected unrelated table to survive provisioning")
	}
}
