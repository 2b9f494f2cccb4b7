package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/techfolio-aggregator/internal/config"
	"github.com/jonathan/techfolio-aggregator/internal/observability"
)

// Path and tuning flags shared by the pipeline commands. Each command registers
// the subset it uses; overrides apply only to flags the user set.
const (
	flagEntries       = "entries"
	flagData          = "data"
	flagSort          = "sort"
	flagBioRoot       = "bio-root"
	flagShowcaseURLs  = "showcase-urls"
	flagShowcaseOut   = "showcase-out"
	flagSelector      = "selector"
	flagConcurrency   = "concurrency"
	flagTimeout       = "timeout"
	flagRawContentURL = "raw-base-url"
)

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagEntries, "", "Path to the profile entries file")
	cmd.Flags().String(flagData, "", "Path of the merged profile data output")
	cmd.Flags().String(flagSort, "", "Profile field to sort output by")
	cmd.Flags().String(flagBioRoot, "", "Directory holding <tmpbio>/bio.json files")
	cmd.Flags().String(flagRawContentURL, "", "Base URL raw bio.json files are fetched from")
}

func addShowcaseFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagShowcaseURLs, "", "Path to the hall of frame page list")
	cmd.Flags().String(flagShowcaseOut, "", "Path of the generated hall of frame include")
	cmd.Flags().String(flagSelector, "", "CSS selector matching a card on a listing page")
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().Int(flagConcurrency, 0, "Maximum concurrent HTTP requests")
	cmd.Flags().Int(flagTimeout, 0, "Per-request timeout in seconds")
}

// resolveConfig builds the run configuration: defaults, then the config file and
// its .local sibling, then TECHFOLIO_* environment variables, then flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	stringFlags := map[string]*string{
		flagEntries:       &cfg.ProfileEntriesFile,
		flagData:          &cfg.DataFile,
		flagSort:          &cfg.SortField,
		flagBioRoot:       &cfg.LocalBioRoot,
		flagRawContentURL: &cfg.RawContentBaseURL,
		flagShowcaseURLs:  &cfg.ShowcaseURLFile,
		flagShowcaseOut:   &cfg.ShowcaseOutputFile,
		flagSelector:      &cfg.CardSelector,
	}
	for name, dst := range stringFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return config.Config{}, err
		}
		*dst = value
	}

	intFlags := map[string]*int{
		flagConcurrency: &cfg.Concurrency,
		flagTimeout:     &cfg.FetchTimeoutSeconds,
	}
	for name, dst := range intFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetInt(name)
		if err != nil {
			return config.Config{}, err
		}
		*dst = value
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// newLogger returns the diagnostic logger for cmd, written to its stderr.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}
