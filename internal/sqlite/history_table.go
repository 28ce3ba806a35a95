// History table accessor. The history log is append-only: Set with an
// existing ID and Delete both fail, and rows enumerate in insertion order.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pantrykeep/pantry/pkg/types"
)

// Compile-time interface check: historyTable must implement Table.
var _ types.Table = (*historyTable)(nil)

// historyTable implements the Table interface for depletion entries.
type historyTable struct {
	backend *Backend
}

// historyColumns are the filterable columns for Fetch.
var historyColumns = map[string]bool{
	"entry_id": true,
	"item_id":  true,
}

// Get retrieves a history entry by its UUID.
func (ht *historyTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	b := ht.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrPantryDetached
	}

	row := b.db.QueryRow(
		`SELECT entry_id, item_id, timestamp, old_quantity, new_quantity, change
		 FROM history WHERE entry_id = ?`,
		id,
	)
	entry, err := hydrateEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting history entry %s: %w", id, err)
	}
	return entry, nil
}

// Set appends a depletion entry. Only creation is allowed: a non-empty id
// returns ErrImmutableEntry. The entry must describe a strict quantity
// decrease; its Change field is derived here, not trusted from the caller.
func (ht *historyTable) Set(id string, data any) (string, error) {
	if id != "" {
		return "", types.ErrImmutableEntry
	}
	entry, ok := data.(*types.HistoryEntry)
	if !ok {
		return "", types.ErrInvalidData
	}
	if entry.OldQuantity < 0 || entry.NewQuantity < 0 {
		return "", types.ErrInvalidQuantity
	}
	if entry.NewQuantity >= entry.OldQuantity {
		return "", types.ErrNotDecreasing
	}

	b := ht.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrPantryDetached
	}

	entry.EntryID = generateUUID()
	entry.Change = entry.NewQuantity - entry.OldQuantity
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO history (entry_id, item_id, timestamp, old_quantity, new_quantity, change)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.ItemID, entry.Timestamp.Format(timeFormat),
		entry.OldQuantity, entry.NewQuantity, entry.Change,
	)
	if err != nil {
		return "", fmt.Errorf("inserting history entry: %w", err)
	}

	if err := persistHistory(tx, b.config.DataDir); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing history write: %w", err)
	}

	b.logger.Debug().
		Int64("item_id", entry.ItemID).
		Int("change", entry.Change).
		Msg("depletion recorded")

	return entry.EntryID, nil
}

// Delete always fails: entries are removed only by a whole-store reset.
func (ht *historyTable) Delete(id string) error {
	return types.ErrImmutableEntry
}

// Fetch returns history entries matching the filter in insertion order.
func (ht *historyTable) Fetch(filter map[string]any) ([]any, error) {
	b := ht.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrPantryDetached
	}

	query := `SELECT entry_id, item_id, timestamp, old_quantity, new_quantity, change
	          FROM history`
	where, args, err := buildWhere(filter, historyColumns)
	if err != nil {
		return nil, err
	}
	query += where + " ORDER BY rowid"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		entry, err := hydrateEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating history entry: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return results, nil
}

// hydrateEntry scans one history row into a *types.HistoryEntry.
func hydrateEntry(s scanner) (*types.HistoryEntry, error) {
	var entry types.HistoryEntry
	var timestamp string
	err := s.Scan(
		&entry.EntryID, &entry.ItemID, &timestamp,
		&entry.OldQuantity, &entry.NewQuantity, &entry.Change,
	)
	if err != nil {
		return nil, err
	}
	entry.Timestamp, err = time.Parse(timeFormat, timestamp)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", timestamp, err)
	}
	return &entry, nil
}

// persistHistory rewrites history.jsonl from the transaction's view of
// the history table.
func persistHistory(tx *sql.Tx, dataDir string) error {
	rows, err := tx.Query(
		`SELECT entry_id, item_id, timestamp, old_quantity, new_quantity, change
		 FROM history ORDER BY rowid`,
	)
	if err != nil {
		return fmt.Errorf("reading history for persist: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec historyJSON
		if err := rows.Scan(
			&rec.EntryID, &rec.ItemID, &rec.Timestamp,
			&rec.OldQuantity, &rec.NewQuantity, &rec.Change,
		); err != nil {
			return fmt.Errorf("scanning history for persist: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling history record: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating history for persist: %w", err)
	}

	return writeJSONL(filepath.Join(dataDir, historyFile), records)
}
