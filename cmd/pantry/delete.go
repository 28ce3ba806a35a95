// Delete command for the pantry CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an item from the inventory",
	Long: `Delete removes an item. Its depletion history is kept; history is
only cleared by a full reset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := parseItemArg(args[0])

		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := store.DeleteItem(itemID); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "item %d not found\n", itemID)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Deleted item %d\n", itemID)
		return nil
	},
}
