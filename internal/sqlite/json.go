// JSON record structures for backend persistence.
// These structures define the record format of the JSONL data files.
package sqlite

// itemJSON represents an item in items.jsonl.
type itemJSON struct {
	ItemID      int64  `json:"item_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Category    string `json:"category"`
	AmazonLink  string `json:"amazon_link,omitempty"`
	RakutenLink string `json:"rakuten_link,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// historyJSON represents a depletion entry in history.jsonl.
type historyJSON struct {
	EntryID     string `json:"entry_id"`
	ItemID      int64  `json:"item_id"`
	Timestamp   string `json:"timestamp"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Change      int    `json:"change"`
}
