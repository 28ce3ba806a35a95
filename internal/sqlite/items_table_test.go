package sqlite

import (
	"errors"
	"testing"

	"github.com/pantrykeep/pantry/pkg/types"
)

// setupItems attaches a fresh backend and returns its items table.
func setupItems(t *testing.T) types.Table {
	t.Helper()
	b := NewBackend()
	if err := b.Attach(testConfig(t)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })

	tbl, err := b.GetTable(types.ItemsTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}
	return tbl
}

func TestItemsTable_CreateAssignsIDs(t *testing.T) {
	tbl := setupItems(t)

	var prev int64
	for _, name := range []string{"rice", "soap", "coffee"} {
		id, err := tbl.Set("", &types.Item{Name: name, Quantity: 1})
		if err != nil {
			t.Fatalf("Set(%q) failed: %v", name, err)
		}
		itemID, err := parseItemID(id)
		if err != nil {
			t.Fatalf("returned id %q not numeric: %v", id, err)
		}
		if itemID <= prev {
			t.Errorf("expected ids strictly increasing, got %d after %d", itemID, prev)
		}
		prev = itemID
	}
}

func TestItemsTable_Get(t *testing.T) {
	tbl := setupItems(t)

	id, err := tbl.Set("", &types.Item{
		Name:        "dish soap",
		Quantity:    4,
		MinQuantity: 1,
		Category:    "bathroom",
		AmazonLink:  "https://www.amazon.co.jp/dp/B000",
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, err := tbl.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	item, ok := raw.(*types.Item)
	if !ok {
		t.Fatalf("expected *types.Item, got %T", raw)
	}
	if item.Name != "dish soap" || item.Quantity != 4 || item.Category != "bathroom" {
		t.Errorf("item mismatch: %+v", item)
	}
	if item.AmazonLink != "https://www.amazon.co.jp/dp/B000" {
		t.Errorf("amazon link not stored: %q", item.AmazonLink)
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected CreatedAt stamped on create")
	}

	if _, err := tbl.Get("999999"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := tbl.Get("not-a-number"); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestItemsTable_Update(t *testing.T) {
	tbl := setupItems(t)

	id, err := tbl.Set("", &types.Item{Name: "rice", Quantity: 5})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, _ := tbl.Get(id)
	item := raw.(*types.Item)
	item.Quantity = 2
	item.MinQuantity = 1

	if _, err := tbl.Set(id, item); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	raw, _ = tbl.Get(id)
	updated := raw.(*types.Item)
	if updated.Quantity != 2 || updated.MinQuantity != 1 {
		t.Errorf("update not applied: %+v", updated)
	}

	// Updating a row that does not exist is an error, not an upsert.
	if _, err := tbl.Set("424242", &types.Item{Name: "ghost", Quantity: 1}); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestItemsTable_SetInvalid(t *testing.T) {
	tbl := setupItems(t)

	if _, err := tbl.Set("", "not an item"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
	if _, err := tbl.Set("", &types.Item{Name: "", Quantity: 1}); err != types.ErrInvalidName {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := tbl.Set("", &types.Item{Name: "rice", Quantity: -1}); err != types.ErrInvalidQuantity {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestItemsTable_Delete(t *testing.T) {
	tbl := setupItems(t)

	id, err := tbl.Set("", &types.Item{Name: "rice", Quantity: 1})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := tbl.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tbl.Get(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := tbl.Delete(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := tbl.Delete("abc"); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestItemsTable_Fetch(t *testing.T) {
	tbl := setupItems(t)

	seed := []*types.Item{
		{Name: "rice", Quantity: 5, Category: "kitchen"},
		{Name: "soap", Quantity: 2, Category: "bathroom"},
		{Name: "coffee", Quantity: 1, Category: "kitchen"},
	}
	for _, item := range seed {
		if _, err := tbl.Set("", item); err != nil {
			t.Fatalf("Set(%q) failed: %v", item.Name, err)
		}
	}

	all, err := tbl.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch(nil) failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
	// Insertion order preserved.
	if all[0].(*types.Item).Name != "rice" || all[2].(*types.Item).Name != "coffee" {
		t.Errorf("unexpected order: %s, %s", all[0].(*types.Item).Name, all[2].(*types.Item).Name)
	}

	kitchen, err := tbl.Fetch(map[string]any{"category": "kitchen"})
	if err != nil {
		t.Fatalf("Fetch by category failed: %v", err)
	}
	if len(kitchen) != 2 {
		t.Errorf("expected 2 kitchen items, got %d", len(kitchen))
	}

	if _, err := tbl.Fetch(map[string]any{"flavor": "umami"}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter for unknown column, got %v", err)
	}
	if _, err := tbl.Fetch(map[string]any{"category": []string{"kitchen"}}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter for unsupported value type, got %v", err)
	}
}
