// Search command: storefront search URLs for an item name.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/inventory"
)

var searchCmd = &cobra.Command{
	Use:   "search <amazon|rakuten> <name>...",
	Short: "Print a storefront search URL for a product name",
	Long: `Search prints the product-search URL for the given storefront, for
picking a shopping link to attach to an item.

Example:
  pantry search amazon "dish soap"
  pantry search rakuten toilet paper`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storefront := args[0]
		name := strings.Join(args[1:], " ")

		switch storefront {
		case "amazon":
			fmt.Println(inventory.AmazonSearchURL(name))
		case "rakuten":
			fmt.Println(inventory.RakutenSearchURL(name))
		default:
			fmt.Fprintf(os.Stderr, "unknown storefront %q (valid: amazon, rakuten)\n", storefront)
			os.Exit(exitUserError)
		}
		return nil
	},
}
