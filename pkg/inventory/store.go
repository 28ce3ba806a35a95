// Package inventory implements the inventory store: item CRUD, clamped
// quantity adjustments with depletion logging, filtered views, and access
// to the forecast engine.
package inventory

import (
	"fmt"
	"strconv"

	"github.com/pantrykeep/pantry/pkg/forecast"
	"github.com/pantrykeep/pantry/pkg/types"
)

// Filter selects a subset of items for listing.
type Filter struct {
	// Category keeps only items with this category. Empty or "all"
	// matches every category.
	Category string

	// LowStock keeps only items whose status is low or out.
	LowStock bool
}

// Store coordinates items, the depletion history, and forecasting over an
// attached Pantry backend. It is the sole mutating entry point; every
// mutation is durably persisted by the backend before it returns.
type Store struct {
	pantry types.Pantry
	engine *forecast.Engine
}

// NewStore creates a Store over an attached Pantry. The store itself is
// the forecast engine's history source.
func NewStore(pantry types.Pantry) *Store {
	s := &Store{pantry: pantry}
	s.engine = forecast.NewEngine(s)
	return s
}

// Forecast returns the store's forecast engine.
func (s *Store) Forecast() *forecast.Engine {
	return s.engine
}

// AddItem validates and persists a new item, returning its generated ID.
func (s *Store) AddItem(item *types.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	tbl, err := s.pantry.GetTable(types.ItemsTable)
	if err != nil {
		return 0, err
	}
	id, err := tbl.Set("", item)
	if err != nil {
		return 0, fmt.Errorf("adding item %q: %w", item.Name, err)
	}
	itemID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing generated item ID %q: %w", id, err)
	}
	return itemID, nil
}

// GetItem retrieves an item by ID.
// Returns types.ErrNotFound if no such item exists.
func (s *Store) GetItem(itemID int64) (*types.Item, error) {
	tbl, err := s.pantry.GetTable(types.ItemsTable)
	if err != nil {
		return nil, err
	}
	raw, err := tbl.Get(strconv.FormatInt(itemID, 10))
	if err != nil {
		return nil, err
	}
	item, ok := raw.(*types.Item)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return item, nil
}

// DeleteItem removes an item. Its history entries are deliberately left
// in place; whether orphaned history should be purged is unresolved, so
// the observed behavior is preserved.
func (s *Store) DeleteItem(itemID int64) error {
	tbl, err := s.pantry.GetTable(types.ItemsTable)
	if err != nil {
		return err
	}
	return tbl.Delete(strconv.FormatInt(itemID, 10))
}

// AdjustQuantity applies a delta to an item's quantity, clamped at zero,
// and persists the result. A decrease appends a depletion entry to the
// history log; an increase or a no-op (already at zero) does not.
// A decrease whose history append fails is undone, so the stock count
// never gets ahead of the log and a retry cannot double-decrement.
// Returns the item with its updated quantity.
func (s *Store) AdjustQuantity(itemID int64, delta int) (*types.Item, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	before, after := item.Adjust(delta)
	if after == before {
		return item, nil
	}

	tbl, err := s.pantry.GetTable(types.ItemsTable)
	if err != nil {
		return nil, err
	}
	id := strconv.FormatInt(itemID, 10)
	if _, err := tbl.Set(id, item); err != nil {
		return nil, fmt.Errorf("updating quantity for item %d: %w", itemID, err)
	}

	if after < before {
		if err := s.recordDepletion(itemID, before, after); err != nil {
			item.Quantity = before
			if _, restoreErr := tbl.Set(id, item); restoreErr != nil {
				return nil, fmt.Errorf("restoring quantity for item %d after failed log write (%v): %w", itemID, restoreErr, err)
			}
			return nil, err
		}
	}
	return item, nil
}

// recordDepletion appends a history entry for a quantity decrease.
func (s *Store) recordDepletion(itemID int64, oldQuantity, newQuantity int) error {
	entry, err := types.NewHistoryEntry(itemID, oldQuantity, newQuantity)
	if err != nil {
		return err
	}
	tbl, err := s.pantry.GetTable(types.HistoryTable)
	if err != nil {
		return err
	}
	if _, err := tbl.Set("", entry); err != nil {
		return fmt.Errorf("recording depletion for item %d: %w", itemID, err)
	}
	return nil
}

// Items returns items matching the filter in creation order. The category
// restriction is pushed down to the backend; the low-stock restriction is
// a status check applied here.
func (s *Store) Items(filter Filter) ([]*types.Item, error) {
	tbl, err := s.pantry.GetTable(types.ItemsTable)
	if err != nil {
		return nil, err
	}

	where := map[string]any{}
	if filter.Category != "" && filter.Category != "all" {
		where["category"] = filter.Category
	}
	raw, err := tbl.Fetch(where)
	if err != nil {
		return nil, err
	}

	items := make([]*types.Item, 0, len(raw))
	for _, r := range raw {
		item, ok := r.(*types.Item)
		if !ok {
			continue
		}
		if filter.LowStock && item.Status() == types.StatusOK {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// EntriesFor returns the item's history entries in insertion order.
// It implements forecast.HistorySource.
func (s *Store) EntriesFor(itemID int64) ([]*types.HistoryEntry, error) {
	tbl, err := s.pantry.GetTable(types.HistoryTable)
	if err != nil {
		return nil, err
	}
	raw, err := tbl.Fetch(map[string]any{"item_id": itemID})
	if err != nil {
		return nil, err
	}
	entries := make([]*types.HistoryEntry, 0, len(raw))
	for _, r := range raw {
		if entry, ok := r.(*types.HistoryEntry); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
