package sqlite

// Schema DDL. item_id doubles as the SQLite rowid, so items enumerate in
// creation order for free; history keeps its rowid for insertion order.
const (
	createItems = `CREATE TABLE items (
    item_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    min_quantity INTEGER NOT NULL,
    category TEXT NOT NULL,
    amazon_link TEXT,
    rakuten_link TEXT,
    created_at TEXT NOT NULL
);`

	createHistory = `CREATE TABLE history (
    entry_id TEXT PRIMARY KEY,
    item_id INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    old_quantity INTEGER NOT NULL,
    new_quantity INTEGER NOT NULL,
    change INTEGER NOT NULL
);`
)

// Index DDL for common queries. History is intentionally not foreign-keyed
// to items: deleting an item leaves its entries behind.
const (
	idxItemsCategory = `CREATE INDEX idx_items_category ON items(category);`
	idxHistoryItem   = `CREATE INDEX idx_history_item ON history(item_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createItems,
	createHistory,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxItemsCategory,
	idxHistoryItem,
}
