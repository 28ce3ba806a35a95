package types

import "time"

// Item stock statuses derived from quantity against the minimum threshold.
const (
	StatusOK  = "ok"
	StatusLow = "low"
	StatusOut = "out"
)

// statusLabels maps statuses to human-readable badge text.
var statusLabels = map[string]string{
	StatusOK:  "in stock",
	StatusLow: "low stock",
	StatusOut: "out of stock",
}

// Item represents a tracked household product.
type Item struct {
	ItemID      int64     `json:"item_id"`      // Millisecond timestamp at creation; monotonic, unique.
	Name        string    `json:"name"`         // Display name (required, non-empty).
	Quantity    int       `json:"quantity"`     // Current stock count, never negative.
	MinQuantity int       `json:"min_quantity"` // Threshold at or below which status becomes low.
	Category    string    `json:"category"`     // Free-form tag for filtering.
	AmazonLink  string    `json:"amazon_link"`  // Optional product URL.
	RakutenLink string    `json:"rakuten_link"` // Optional product URL.
	CreatedAt   time.Time `json:"created_at"`   // Timestamp of creation.
}

// Validate checks the invariants on item fields.
// Returns ErrInvalidName for an empty name and ErrInvalidQuantity for a
// negative quantity or threshold.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if i.Quantity < 0 || i.MinQuantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Status classifies the item's stock level. It is a pure function of
// Quantity and MinQuantity: zero quantity is "out", at or below the
// threshold is "low", above it is "ok".
func (i *Item) Status() string {
	if i.Quantity == 0 {
		return StatusOut
	}
	if i.Quantity <= i.MinQuantity {
		return StatusLow
	}
	return StatusOK
}

// Adjust applies a quantity delta, clamping the result at zero.
// Returns the quantity before and after the adjustment; the caller records
// a history entry when after < before. The caller must persist via
// Table.Set.
func (i *Item) Adjust(delta int) (before, after int) {
	before = i.Quantity
	after = before + delta
	if after < 0 {
		after = 0
	}
	i.Quantity = after
	return before, after
}

// StatusLabel returns the badge text for a status value, or the status
// itself if it is not recognized.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}
