// History command: show an item's depletion log.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show an item's depletion history",
	Long: `History lists the recorded quantity decreases for an item in the
order they happened. Entries survive item deletion.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := parseItemArg(args[0])

		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "history:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		entries, err := store.EntriesFor(itemID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fetch history:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			printJSON(entries)
			return nil
		}

		if len(entries) == 0 {
			fmt.Printf("No history for item %d.\n", itemID)
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s  %3d -> %-3d  (%d)\n",
				entry.Timestamp.Local().Format("2006-01-02 15:04"),
				entry.OldQuantity, entry.NewQuantity, entry.Change)
		}
		return nil
	},
}
