// Package main provides the entry point for the gas station finder.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gas-station-finder",
	Short: "Find gas stations near a US ZIP code, city or state",
	Long:  "Gas station finder resolves free-text US locations through Google Geocoding, looks up nearby stations through Google Places and answers over HTTP, Telegram or the command line.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
