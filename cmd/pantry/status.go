// Status command: stock badges plus aggregated urgent warnings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/inventory"
)

// statusView aggregates every item's badge and forecast with the global
// warning list.
type statusView struct {
	Items    []forecastStatus `json:"items"`
	Warnings []string         `json:"warnings"`
}

// forecastStatus is one item's status line: badge plus forecast.
type forecastStatus struct {
	forecastView
	Status string `json:"status"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stock status and urgent run-out warnings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "status:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		items, err := store.Items(inventory.Filter{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "status:", err)
			os.Exit(exitSysError)
		}

		view := statusView{
			Items:    make([]forecastStatus, 0, len(items)),
			Warnings: []string{},
		}
		for _, item := range items {
			fc, err := buildForecast(store, item)
			if err != nil {
				fmt.Fprintln(os.Stderr, "status:", err)
				os.Exit(exitSysError)
			}
			view.Items = append(view.Items, forecastStatus{
				forecastView: fc,
				Status:       item.Status(),
			})
			if fc.Urgent {
				view.Warnings = append(view.Warnings,
					fmt.Sprintf("%s runs out in %d days (%s)",
						item.Name, *fc.DaysRemaining, fc.Date.Format("2006-01-02")))
			}
		}

		if flagJSON {
			printJSON(view)
			return nil
		}

		if len(items) == 0 {
			fmt.Println("No items tracked yet. Add one with: pantry add --name <name>")
			return nil
		}
		for _, item := range items {
			fmt.Println(itemLine(item))
		}
		if len(view.Warnings) > 0 {
			fmt.Println()
			for _, warning := range view.Warnings {
				fmt.Println("WARNING:", warning)
			}
		}
		return nil
	},
}
