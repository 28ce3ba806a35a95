// Package sqlite implements the SQLite storage backend for pantry.
// SQLite is the in-process query engine; the JSONL files in DataDir are
// the source of truth, reloaded on every attach and rewritten atomically
// on every mutation. Durability writes are synchronous: a mutation whose
// JSONL write fails is rolled back so memory and storage never diverge.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/pantrykeep/pantry/pkg/types"
)

// dbFileName is the rebuildable SQLite database inside DataDir.
const dbFileName = "pantry.db"

// Backend implements the Pantry interface using SQLite as the query
// engine and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
	logger   zerolog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
		logger: zerolog.Nop(),
	}
}

// SetLogger replaces the backend's logger. The default is a no-op logger;
// the CLI installs a console logger when --verbose is set.
func (b *Backend) SetLogger(logger zerolog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = logger
}

// GetTable returns a Table accessor for the given table name.
// Returns ErrTableNotFound if the name is not recognized and
// ErrPantryDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrPantryDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if needed, rebuilds the SQLite database from the JSONL files,
// and creates the table accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The database is a cache of the JSONL files; start from a fresh
	// schema every attach.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.attached = true

	b.tables[types.ItemsTable] = &itemsTable{backend: b}
	b.tables[types.HistoryTable] = &historyTable{backend: b}

	b.logger.Debug().
		Str("data_dir", dataDir).
		Msg("pantry attached")

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrPantryDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	b.logger.Debug().Msg("pantry detached")

	return nil
}

// Reset bulk-clears all persisted state: both collections are emptied in
// one transaction and the JSONL files rewritten. This is the only way
// history entries are ever removed.
func (b *Backend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrPantryDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	if err := persistItems(tx, b.config.DataDir); err != nil {
		return err
	}
	if err := persistHistory(tx, b.config.DataDir); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}

	b.logger.Debug().Msg("pantry reset")

	return nil
}

// generateUUID generates a new UUID v7 for history entry IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
