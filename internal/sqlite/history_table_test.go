package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/pantrykeep/pantry/pkg/types"
)

func setupHistory(t *testing.T) types.Table {
	t.Helper()
	b := NewBackend()
	if err := b.Attach(testConfig(t)); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })

	tbl, err := b.GetTable(types.HistoryTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}
	return tbl
}

func TestHistoryTable_Append(t *testing.T) {
	tbl := setupHistory(t)

	id, err := tbl.Set("", &types.HistoryEntry{ItemID: 42, OldQuantity: 5, NewQuantity: 3})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated entry id")
	}

	raw, err := tbl.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	entry := raw.(*types.HistoryEntry)
	if entry.ItemID != 42 || entry.OldQuantity != 5 || entry.NewQuantity != 3 {
		t.Errorf("entry mismatch: %+v", entry)
	}
	if entry.Change != -2 {
		t.Errorf("expected derived change -2, got %d", entry.Change)
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected timestamp stamped on append")
	}
}

func TestHistoryTable_PreservesProvidedTimestamp(t *testing.T) {
	tbl := setupHistory(t)

	when := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	id, err := tbl.Set("", &types.HistoryEntry{ItemID: 1, Timestamp: when, OldQuantity: 4, NewQuantity: 2})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, _ := tbl.Get(id)
	if got := raw.(*types.HistoryEntry).Timestamp; !got.Equal(when) {
		t.Errorf("expected timestamp %v preserved, got %v", when, got)
	}
}

func TestHistoryTable_Immutable(t *testing.T) {
	tbl := setupHistory(t)

	id, err := tbl.Set("", &types.HistoryEntry{ItemID: 1, OldQuantity: 3, NewQuantity: 1})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := tbl.Set(id, &types.HistoryEntry{ItemID: 1, OldQuantity: 9, NewQuantity: 1}); err != types.ErrImmutableEntry {
		t.Errorf("expected ErrImmutableEntry on update, got %v", err)
	}
	if err := tbl.Delete(id); err != types.ErrImmutableEntry {
		t.Errorf("expected ErrImmutableEntry on delete, got %v", err)
	}
}

func TestHistoryTable_RejectsNonDecrease(t *testing.T) {
	tbl := setupHistory(t)

	tests := []struct {
		name     string
		oldQty   int
		newQty   int
		expected error
	}{
		{"increase", 2, 5, types.ErrNotDecreasing},
		{"no change", 3, 3, types.ErrNotDecreasing},
		{"negative old", -1, 0, types.ErrInvalidQuantity},
		{"negative new", 3, -2, types.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tbl.Set("", &types.HistoryEntry{ItemID: 1, OldQuantity: tt.oldQty, NewQuantity: tt.newQty})
			if err != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}

	if _, err := tbl.Set("", "not an entry"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
}

func TestHistoryTable_FetchByItem(t *testing.T) {
	tbl := setupHistory(t)

	// Interleave entries for two items.
	seed := []struct {
		itemID int64
		oldQty int
		newQty int
	}{
		{1, 10, 8},
		{2, 5, 4},
		{1, 8, 5},
		{1, 5, 4},
	}
	for _, s := range seed {
		if _, err := tbl.Set("", &types.HistoryEntry{ItemID: s.itemID, OldQuantity: s.oldQty, NewQuantity: s.newQty}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	results, err := tbl.Fetch(map[string]any{"item_id": int64(1)})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 entries for item 1, got %d", len(results))
	}
	// Append order preserved.
	changes := []int{-2, -3, -1}
	for i, raw := range results {
		entry := raw.(*types.HistoryEntry)
		if entry.ItemID != 1 {
			t.Errorf("entry %d belongs to item %d", i, entry.ItemID)
		}
		if entry.Change != changes[i] {
			t.Errorf("entry %d: expected change %d, got %d", i, changes[i], entry.Change)
		}
	}

	if _, err := tbl.Fetch(map[string]any{"change": "big"}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}
