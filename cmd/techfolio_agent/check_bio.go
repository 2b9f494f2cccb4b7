package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/techfolio-aggregator/internal/bio"
	"github.com/jonathan/techfolio-aggregator/internal/fetch"
	"github.com/jonathan/techfolio-aggregator/internal/parsing"
	"github.com/jonathan/techfolio-aggregator/internal/schemas"
)

var checkBioCommand = &cobra.Command{
	Use:   "check-bio [path]",
	Short: "Check a bio.json against the bio schema",
	Long: `Parses a bio.json the way the aggregator does and validates it against the bio
schema. Pass a file path, or --host to fetch a member's published bio.

The aggregator merges bios that fail the schema anyway; this command reports what a
member should fix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckBioCmd,
}

var checkBioHost string

func init() {
	checkBioCommand.Flags().StringVar(&checkBioHost, "host", "", "Techfolio host whose published bio.json to check")
	addFetchFlags(checkBioCommand)

	rootCmd.AddCommand(checkBioCommand)
}

func runCheckBioCmd(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (checkBioHost == "") {
		return fmt.Errorf("provide either a bio.json path or --host")
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var source string
	var data []byte
	if checkBioHost != "" {
		source = bio.URLFor(cfg.RawContentBaseURL, cfg.Branch, checkBioHost)
		client := fetch.NewClient(&fetch.Options{Timeout: cfg.FetchTimeout(), UserAgent: cfg.UserAgent})
		resp, err := client.Get(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("failed to fetch bio: %w", err)
		}
		data = resp.Body
	} else {
		source = args[0]
		data, err = os.ReadFile(source)
		if err != nil {
			return &parsing.ReadError{Path: source, Cause: err}
		}
	}

	decoded, err := bio.Decode(source, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if decoded.Violations != nil {
		_, _ = fmt.Fprintf(out, "Validation failed for %s\n", source)
		var validationErr *schemas.ValidationError
		if errors.As(decoded.Violations, &validationErr) {
			for _, fieldErr := range validationErr.Errors {
				_, _ = fmt.Fprintf(out, "  - %s: %s\n", fieldErr.Field, fieldErr.Message)
			}
			return fmt.Errorf("bio does not match schema (fields: %s)", strings.Join(validationErr.Fields(), ", "))
		}
		_, _ = fmt.Fprintf(out, "  - %v\n", decoded.Violations)
		return fmt.Errorf("bio does not match schema")
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s (%s, %d interests)\n",
		source, decoded.Document.Basics.Name, len(decoded.Document.Interests))
	return nil
}
