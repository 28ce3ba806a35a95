// Add command for the pantry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/types"
)

var (
	addName        string
	addQuantity    int
	addMinQuantity int
	addCategory    string
	addAmazonLink  string
	addRakutenLink string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item to the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		item := &types.Item{
			Name:        addName,
			Quantity:    addQuantity,
			MinQuantity: addMinQuantity,
			Category:    addCategory,
			AmazonLink:  addAmazonLink,
			RakutenLink: addRakutenLink,
		}

		itemID, err := store.AddItem(item)
		if err != nil {
			fmt.Fprintf(os.Stderr, "add item: %s\n", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			printJSON(item)
		} else {
			fmt.Printf("Added %q: %d\n", item.Name, itemID)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "item name (required)")
	addCmd.Flags().IntVar(&addQuantity, "quantity", 0, "initial stock count")
	addCmd.Flags().IntVar(&addMinQuantity, "min-quantity", 0, "low-stock threshold")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category tag")
	addCmd.Flags().StringVar(&addAmazonLink, "amazon-link", "", "Amazon product URL")
	addCmd.Flags().StringVar(&addRakutenLink, "rakuten-link", "", "Rakuten product URL")

	addCmd.MarkFlagRequired("name")
}
