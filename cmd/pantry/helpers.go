// Shared helpers for pantry CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrykeep/pantry/internal/sqlite"
	"github.com/pantrykeep/pantry/pkg/inventory"
	"github.com/pantrykeep/pantry/pkg/types"
)

// newLogger builds the CLI logger: a console writer at debug level when
// --verbose is set, otherwise a no-op logger.
func newLogger() zerolog.Logger {
	if !flagVerbose {
		return zerolog.Nop()
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
}

// attachStore resolves the data directory, attaches a SQLite backend, and
// wraps it in an inventory store. The caller must defer backend.Detach().
func attachStore() (*sqlite.Backend, *inventory.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	backend.SetLogger(newLogger())

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}
	if err := backend.Attach(cfg); err != nil {
		return nil, nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, inventory.NewStore(backend), nil
}

// parseItemArg parses an item ID argument, exiting with a user error on
// malformed input.
func parseItemArg(arg string) int64 {
	itemID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid item ID %q\n", arg)
		os.Exit(exitUserError)
	}
	return itemID
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// itemLine formats one item for human-readable listings.
func itemLine(item *types.Item) string {
	status := item.Status()
	return fmt.Sprintf("%d  %-20s  %3d/%-3d  %-12s  %s",
		item.ItemID, item.Name, item.Quantity, item.MinQuantity,
		item.Category, types.StatusLabel(status))
}
