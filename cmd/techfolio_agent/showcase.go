package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/techfolio-aggregator/internal/pipeline"
)

var showcaseCommand = &cobra.Command{
	Use:   "showcase",
	Short: "Rebuild the hall of frame include",
	Long: `Reads the hall of frame page list, keeps essay and project pages (essays first),
extracts the card linking to each page from its listing, rewrites relative links to
absolute ones and writes the cards in list order.`,
	RunE: runShowcaseCmd,
}

var showcaseJSON bool

func init() {
	addShowcaseFlags(showcaseCommand)
	addFetchFlags(showcaseCommand)
	showcaseCommand.Flags().BoolVar(&showcaseJSON, "json", false, "Print the run summary as JSON")

	rootCmd.AddCommand(showcaseCommand)
}

func runShowcaseCmd(cmd *cobra.Command, _ []string) error {
	return runPipeline(cmd, pipeline.RunOptions{SkipProfiles: true}, showcaseJSON)
}
