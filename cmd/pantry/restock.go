// Restock command: increase stock without touching history.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/types"
)

var restockCmd = &cobra.Command{
	Use:   "restock <id> [count]",
	Short: "Increase an item's stock count",
	Long: `Restock increases an item's quantity by count (default 1).
Increases are not depletion events and are never logged to history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := parseItemArg(args[0])
		count := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "invalid count %q\n", args[1])
				os.Exit(exitUserError)
			}
			count = n
		}

		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "restock:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		item, err := store.AdjustQuantity(itemID, count)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "item %d not found\n", itemID)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "restock:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			printJSON(itemView{Item: item, Status: item.Status()})
			return nil
		}

		fmt.Printf("%s: %d in stock (%s)\n", item.Name, item.Quantity, types.StatusLabel(item.Status()))
		return nil
	},
}
