package types

import "time"

// HistoryEntry records a single stock depletion event for an item.
// Entries are immutable once created and the log is append-only; only a
// whole-store reset removes them. Deleting an item does not purge its
// entries, so an entry may reference an item that no longer exists.
type HistoryEntry struct {
	EntryID     string    `json:"entry_id"`     // UUID v7, generated on creation.
	ItemID      int64     `json:"item_id"`      // The item this entry belongs to.
	Timestamp   time.Time `json:"timestamp"`    // Event time.
	OldQuantity int       `json:"old_quantity"` // Quantity before the decrease.
	NewQuantity int       `json:"new_quantity"` // Quantity after the decrease.
	Change      int       `json:"change"`       // NewQuantity - OldQuantity; always negative.
}

// NewHistoryEntry builds an entry for a quantity decrease, stamped with the
// current time. The EntryID is assigned by the backend on Set.
// Returns ErrInvalidQuantity if either quantity is negative and
// ErrNotDecreasing if newQuantity is not strictly below oldQuantity;
// increases are never logged.
func NewHistoryEntry(itemID int64, oldQuantity, newQuantity int) (*HistoryEntry, error) {
	if oldQuantity < 0 || newQuantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if newQuantity >= oldQuantity {
		return nil, ErrNotDecreasing
	}
	return &HistoryEntry{
		ItemID:      itemID,
		Timestamp:   time.Now().UTC(),
		OldQuantity: oldQuantity,
		NewQuantity: newQuantity,
		Change:      newQuantity - oldQuantity,
	}, nil
}
