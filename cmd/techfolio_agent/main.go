// Package main provides the entry point for the techfolio aggregator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "techfolio_agent",
	Short: "Techfolio directory aggregator",
	Long: `Techfolio aggregator refreshes a techfolio directory site: it merges every member's
bio.json into the profile data file and rebuilds the hall of frame card include from
the listed essay and project pages.`,
	SilenceUsage: true,
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to techfolio.json5 config file (default: ./techfolio.json5 if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
