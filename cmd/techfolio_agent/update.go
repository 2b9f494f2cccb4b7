package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/techfolio-aggregator/internal/observability"
	"github.com/jonathan/techfolio-aggregator/internal/pipeline"
)

var updateCommand = &cobra.Command{
	Use:   "update",
	Short: "Refresh profile data and the hall of frame",
	Long: `Runs the profile pipeline (load entries, merge local and remote bios, write the
sorted data file) and then the hall of frame pipeline (scrape one card per listed
page and write the combined include).

Individual failures are logged and skipped; only an unreadable profile entries file
stops the run.`,
	RunE: runUpdateCmd,
}

var updateJSON bool

func init() {
	addProfileFlags(updateCommand)
	addShowcaseFlags(updateCommand)
	addFetchFlags(updateCommand)
	updateCommand.Flags().BoolVar(&updateJSON, "json", false, "Print the run summary as JSON")

	rootCmd.AddCommand(updateCommand)
}

func runUpdateCmd(cmd *cobra.Command, _ []string) error {
	return runPipeline(cmd, pipeline.RunOptions{}, updateJSON)
}

// runPipeline resolves configuration, runs the selected pipelines and reports the
// summary on stdout.
func runPipeline(cmd *cobra.Command, opts pipeline.RunOptions, asJSON bool) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	opts.Config = cfg
	opts.Logger = logger
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			logger.Info(event.Message, "stage", event.Stage)
		}
	}

	summary, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(summary)
	return nil
}
