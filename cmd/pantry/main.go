// Package main provides the pantry CLI, a local-first household
// inventory tracker: record what you have, log what you use, and see
// what runs out next.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
