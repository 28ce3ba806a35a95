// Package integration provides shared helpers for integration tests.
package integration

import (
	"testing"

	"github.com/pantrykeep/pantry/internal/sqlite"
	"github.com/pantrykeep/pantry/pkg/inventory"
	"github.com/pantrykeep/pantry/pkg/types"
)

// Compile-time check that the backend satisfies the Pantry interface.
var _ types.Pantry = (*sqlite.Backend)(nil)

// setupPantry creates a backend attached to an isolated temp directory.
// Each test gets its own pantry instance for isolation.
func setupPantry(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

// reattach detaches and re-attaches a backend over the same data
// directory, simulating a process restart.
func reattach(t *testing.T, b *sqlite.Backend, dir string) *sqlite.Backend {
	t.Helper()
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	fresh := sqlite.NewBackend()
	if err := fresh.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("re-Attach: %v", err)
	}
	t.Cleanup(func() { fresh.Detach() })
	return fresh
}

// mustAddItem adds an item through the store and returns its ID.
func mustAddItem(t *testing.T, store *inventory.Store, item *types.Item) int64 {
	t.Helper()
	id, err := store.AddItem(item)
	if err != nil {
		t.Fatalf("AddItem %q: %v", item.Name, err)
	}
	return id
}

// mustGetItem retrieves an item by ID or fails the test.
func mustGetItem(t *testing.T, store *inventory.Store, id int64) *types.Item {
	t.Helper()
	item, err := store.GetItem(id)
	if err != nil {
		t.Fatalf("GetItem %d: %v", id, err)
	}
	return item
}
