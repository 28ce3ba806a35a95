// Items table accessor: hydration between SQLite rows and *types.Item,
// with atomic persistence to items.jsonl on every mutation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pantrykeep/pantry/pkg/types"
)

// timeFormat is the timestamp encoding used in SQLite columns and JSONL
// records. RFC3339Nano round-trips time.Time without precision loss.
const timeFormat = time.RFC3339Nano

// Compile-time interface check: itemsTable must implement Table.
var _ types.Table = (*itemsTable)(nil)

// itemsTable implements the Table interface for the item entity type.
type itemsTable struct {
	backend *Backend
}

// itemColumns are the filterable columns for Fetch.
var itemColumns = map[string]bool{
	"item_id":      true,
	"name":         true,
	"quantity":     true,
	"min_quantity": true,
	"category":     true,
}

// Get retrieves an item by its decimal string ID.
func (it *itemsTable) Get(id string) (any, error) {
	itemID, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	b := it.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrPantryDetached
	}

	row := b.db.QueryRow(
		`SELECT item_id, name, quantity, min_quantity, category,
		        COALESCE(amazon_link, ''), COALESCE(rakuten_link, ''), created_at
		 FROM items WHERE item_id = ?`,
		itemID,
	)
	item, err := hydrateItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %d: %w", itemID, err)
	}
	return item, nil
}

// Set persists an item. An empty id creates the item with a generated
// time-derived ID; a non-empty id updates the existing item. The JSONL
// collection is rewritten inside the same transaction, so a failed
// durable write leaves the database untouched.
func (it *itemsTable) Set(id string, data any) (string, error) {
	item, ok := data.(*types.Item)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := item.Validate(); err != nil {
		return "", err
	}

	b := it.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrPantryDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if id == "" {
		itemID, err := nextItemID(tx)
		if err != nil {
			return "", err
		}
		item.ItemID = itemID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
		_, err = tx.Exec(
			`INSERT INTO items (item_id, name, quantity, min_quantity, category,
			                    amazon_link, rakuten_link, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ItemID, item.Name, item.Quantity, item.MinQuantity, item.Category,
			item.AmazonLink, item.RakutenLink, item.CreatedAt.Format(timeFormat),
		)
		if err != nil {
			return "", fmt.Errorf("inserting item %q: %w", item.Name, err)
		}
	} else {
		itemID, err := parseItemID(id)
		if err != nil {
			return "", err
		}
		item.ItemID = itemID
		res, err := tx.Exec(
			`UPDATE items SET name = ?, quantity = ?, min_quantity = ?, category = ?,
			                  amazon_link = ?, rakuten_link = ?
			 WHERE item_id = ?`,
			item.Name, item.Quantity, item.MinQuantity, item.Category,
			item.AmazonLink, item.RakutenLink, itemID,
		)
		if err != nil {
			return "", fmt.Errorf("updating item %d: %w", itemID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", err
		}
		if affected == 0 {
			return "", types.ErrNotFound
		}
	}

	if err := persistItems(tx, b.config.DataDir); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing item write: %w", err)
	}

	b.logger.Debug().
		Int64("item_id", item.ItemID).
		Int("quantity", item.Quantity).
		Msg("item saved")

	return strconv.FormatInt(item.ItemID, 10), nil
}

// Delete removes an item. Its history entries are not cascaded.
func (it *itemsTable) Delete(id string) error {
	itemID, err := parseItemID(id)
	if err != nil {
		return err
	}

	b := it.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrPantryDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM items WHERE item_id = ?", itemID)
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", itemID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if err := persistItems(tx, b.config.DataDir); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item delete: %w", err)
	}

	b.logger.Debug().Int64("item_id", itemID).Msg("item deleted")

	return nil
}

// Fetch returns items matching the filter in creation order. Filter keys
// are column names; multiple keys are ANDed together.
func (it *itemsTable) Fetch(filter map[string]any) ([]any, error) {
	b := it.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrPantryDetached
	}

	query := `SELECT item_id, name, quantity, min_quantity, category,
	                 COALESCE(amazon_link, ''), COALESCE(rakuten_link, ''), created_at
	          FROM items`
	where, args, err := buildWhere(filter, itemColumns)
	if err != nil {
		return nil, err
	}
	query += where + " ORDER BY item_id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return results, nil
}

// parseItemID parses a decimal item ID string.
func parseItemID(id string) (int64, error) {
	if id == "" {
		return 0, types.ErrInvalidID
	}
	itemID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, types.ErrInvalidID
	}
	return itemID, nil
}

// nextItemID generates a millisecond-timestamp item ID, bumped past the
// current maximum so IDs stay unique and monotonic even when two items
// are created within the same millisecond.
func nextItemID(tx *sql.Tx) (int64, error) {
	var maxID int64
	if err := tx.QueryRow("SELECT COALESCE(MAX(item_id), 0) FROM items").Scan(&maxID); err != nil {
		return 0, fmt.Errorf("reading max item ID: %w", err)
	}
	id := time.Now().UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}
	return id, nil
}

// scanner abstracts *sql.Row and *sql.Rows for hydration.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateItem scans one items row into a *types.Item.
func hydrateItem(s scanner) (*types.Item, error) {
	var item types.Item
	var createdAt string
	err := s.Scan(
		&item.ItemID, &item.Name, &item.Quantity, &item.MinQuantity,
		&item.Category, &item.AmazonLink, &item.RakutenLink, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	item.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return &item, nil
}

// persistItems rewrites items.jsonl from the transaction's view of the
// items table.
func persistItems(tx *sql.Tx, dataDir string) error {
	rows, err := tx.Query(
		`SELECT item_id, name, quantity, min_quantity, category,
		        COALESCE(amazon_link, ''), COALESCE(rakuten_link, ''), created_at
		 FROM items ORDER BY item_id`,
	)
	if err != nil {
		return fmt.Errorf("reading items for persist: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec itemJSON
		if err := rows.Scan(
			&rec.ItemID, &rec.Name, &rec.Quantity, &rec.MinQuantity,
			&rec.Category, &rec.AmazonLink, &rec.RakutenLink, &rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("scanning item for persist: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling item record: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating items for persist: %w", err)
	}

	return writeJSONL(filepath.Join(dataDir, itemsFile), records)
}

// buildWhere turns a filter map into a WHERE clause. Keys must be in the
// allowed column set; values must be strings, booleans, or numbers.
func buildWhere(filter map[string]any, allowed map[string]bool) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	var clauses []string
	var args []any
	for key, value := range filter {
		if !allowed[key] {
			return "", nil, fmt.Errorf("%w: unknown column %q", types.ErrInvalidFilter, key)
		}
		switch v := value.(type) {
		case string, bool, int, int64, float64:
			args = append(args, v)
		default:
			return "", nil, fmt.Errorf("%w: %T for column %q", types.ErrInvalidFilter, value, key)
		}
		clauses = append(clauses, key+" = ?")
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
