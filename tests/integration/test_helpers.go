//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/mastrkit/refschema/internal/manifest"
	"github.com/mastrkit/refschema/internal/provision"
)

// testStore is what every backend client provides: DDL execution for
// apply and structure read-back for verification.
type testStore interface {
	provision.Store
	provision.Inspector
}

// provisionRegistry applies the registry manifest and fails the test on
// any incomplete run.
func provisionRegistry(t *testing.T, ctx context.Context, store testStore) *provision.Result {
	t.Helper()

	result, err := provision.Apply(ctx, store, manifest.Registry())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !result.Complete() {
		t.Fatalf("Apply incomplete: %d of %d statements applied", result.Applied, len(result.Statements))
	}
	return result
}

// assertStructureMatches verifies the live store against the registry
// manifest and reports every mismatch.
func assertStructureMatches(t *testing.T, ctx context.Context, store testStore) {
	t.Helper()

	result, err := provision.Verify(ctx, store, manifest.Registry())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	for _, mismatch := range result.Mismatches {
		t.Errorf("Structure mismatch: %s", mismatch)
	}
}

// assertUniqueIDEnforced checks that the unique index on id rejects
// duplicate codes while distinct codes insert fine.
func assertUniqueIDEnforced(t *testing.T, ctx context.Context, store testStore, table string) {
	t.Helper()

	insert := func(id int, name string) error {
		return store.ExecStatement(ctx, fmt.Sprintf("INSERT INTO %s (id, name) VALUES (%d, '%s')", table, id, name))
	}

	if err := insert(1, "Wind"); err != nil {
		t.Fatalf("First insert into %s failed: %v", table, err)
	}
	if err := insert(1, "Solar"); err == nil {
		t.Errorf("Expected duplicate id insert into %s to fail", table)
	}
	if err := insert(2, "Solar"); err != nil {
		t.Errorf("Insert with distinct id into %s failed: %v", table, err)
	}
}

// assertNullableName checks that the name column accepts NULL.
func assertNullableName(t *testing.T, ctx context.Context, store testStore, table string) {
	t.Helper()

	if err := store.ExecStatement(ctx, fmt.Sprintf("INSERT INTO %s (id, name) VALUES (99, NULL)", table)); err != nil {
		t.Errorf("Expected NULL name insert into %s to succeed: %v", table, err)
	}
}
