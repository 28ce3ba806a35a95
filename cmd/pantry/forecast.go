// Forecast command: consumption rates and run-out projections.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrykeep/pantry/pkg/forecast"
	"github.com/pantrykeep/pantry/pkg/inventory"
	"github.com/pantrykeep/pantry/pkg/types"
)

// forecastView is the JSON forecast shape. Rate and the projection fields
// are omitted when the underlying history cannot support them.
type forecastView struct {
	ItemID        int64      `json:"item_id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	Rate          *float64   `json:"rate,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Urgent        bool       `json:"urgent"`
}

var forecastCmd = &cobra.Command{
	Use:   "forecast [id]",
	Short: "Project when items run out",
	Long: `Forecast estimates each item's daily consumption from its depletion
history over the last 30 days and projects the date its stock reaches
zero. Items with fewer than two recent depletion events, or events
spanning less than a day, have no estimate. Projections within 3 days
are marked urgent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, store, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "forecast:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		var items []*types.Item
		if len(args) == 1 {
			item, err := store.GetItem(parseItemArg(args[0]))
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					fmt.Fprintf(os.Stderr, "item %s not found\n", args[0])
					os.Exit(exitUserError)
				}
				fmt.Fprintln(os.Stderr, "forecast:", err)
				os.Exit(exitSysError)
			}
			items = []*types.Item{item}
		} else {
			items, err = store.Items(inventory.Filter{})
			if err != nil {
				fmt.Fprintln(os.Stderr, "forecast:", err)
				os.Exit(exitSysError)
			}
		}

		views := make([]forecastView, 0, len(items))
		for _, item := range items {
			view, err := buildForecast(store, item)
			if err != nil {
				fmt.Fprintln(os.Stderr, "forecast:", err)
				os.Exit(exitSysError)
			}
			views = append(views, view)
		}

		if flagJSON {
			printJSON(views)
			return nil
		}

		for _, view := range views {
			fmt.Println(forecastLine(view))
		}
		return nil
	},
}

// buildForecast computes the forecast view for one item. Insufficient
// data and absent predictions are normal outcomes, not errors.
func buildForecast(store *inventory.Store, item *types.Item) (forecastView, error) {
	view := forecastView{
		ItemID:   item.ItemID,
		Name:     item.Name,
		Quantity: item.Quantity,
	}
	engine := store.Forecast()

	rate, err := engine.ConsumptionRate(item.ItemID)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			return view, nil
		}
		return view, err
	}
	view.Rate = &rate

	pred, err := engine.PredictRunOut(item)
	if err != nil {
		if errors.Is(err, forecast.ErrNoPrediction) {
			return view, nil
		}
		return view, err
	}
	view.DaysRemaining = &pred.DaysRemaining
	view.Date = &pred.Date
	view.Urgent = pred.Urgent()
	return view, nil
}

// forecastLine formats one forecast for human-readable output.
func forecastLine(view forecastView) string {
	prefix := fmt.Sprintf("%d  %-20s", view.ItemID, view.Name)
	if view.Rate == nil {
		return prefix + "  insufficient data"
	}
	if view.DaysRemaining == nil {
		return fmt.Sprintf("%s  %.2f/day, no prediction", prefix, *view.Rate)
	}
	line := fmt.Sprintf("%s  %.2f/day, runs out in %d days (%s)",
		prefix, *view.Rate, *view.DaysRemaining, view.Date.Format("2006-01-02"))
	if view.Urgent {
		line += "  URGENT"
	}
	return line
}
