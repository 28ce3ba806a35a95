// List command for the pantry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/inventory"
	"github.com/pantrykeep/pantry/pkg/types"
)

var (
	listCategory string
	listLow      bool
)

// itemView is the JSON listing shape: the item plus its derived status.
type itemView struct {
	*types.Item
	Status string `json:"status"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	Long: `List shows inventory items in creation order.

Items can be restricted to a category and to those at or below their
low-stock threshold.

Example:
  pantry list
  pantry list --category kitchen
  pantry list --low`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		items, err := store.Items(inventory.Filter{
			Category: listCategory,
			LowStock: listLow,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "list items:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			views := make([]itemView, 0, len(items))
			for _, item := range items {
				views = append(views, itemView{Item: item, Status: item.Status()})
			}
			printJSON(views)
			return nil
		}

		if len(items) == 0 {
			fmt.Println("No items match.")
			return nil
		}
		for _, item := range items {
			fmt.Println(itemLine(item))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "restrict to a category")
	listCmd.Flags().BoolVar(&listLow, "low", false, "only items that are low or out of stock")
}
