// Reset command: bulk-clear all persisted state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all items and history",
	Long: `Reset empties both collections. This is the only operation that
removes history entries. Requires --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Fprintln(os.Stderr, "reset: refusing without --force")
			os.Exit(exitUserError)
		}

		backend, _, err := attachStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := backend.Reset(); err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("Pantry cleared")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "confirm clearing all data")
}
