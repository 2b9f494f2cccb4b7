package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/techfolio-aggregator/internal/pipeline"
)

var profilesCommand = &cobra.Command{
	Use:   "profiles",
	Short: "Merge bios into the profile data file",
	Long: `Loads the profile entries, merges each member's local or remote bio.json into its
entry without overwriting fields already present, and writes the data file sorted by
the configured field.`,
	RunE: runProfilesCmd,
}

var profilesJSON bool

func init() {
	addProfileFlags(profilesCommand)
	addFetchFlags(profilesCommand)
	profilesCommand.Flags().BoolVar(&profilesJSON, "json", false, "Print the run summary as JSON")

	rootCmd.AddCommand(profilesCommand)
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	return runPipeline(cmd, pipeline.RunOptions{SkipShowcase: true}, profilesJSON)
}
