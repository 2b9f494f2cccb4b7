// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/techfolio-aggregator/internal/parsing"
)

// DefaultPath is the config file the CLI looks for when --config is not given.
const DefaultPath = "techfolio.json5"

// Config represents the aggregator configuration. Every field has a default, so
// a missing config file is not an error.
type Config struct {
	// Profiles
	ProfileEntriesFile string `json:"profile_entries_file,omitempty" validate:"required"` // Stub list input
	DataFile           string `json:"data_file,omitempty" validate:"required"`            // Merged profile output
	SortField          string `json:"sort_field,omitempty" validate:"required"`           // Output sort key (surname)
	LocalBioRoot       string `json:"local_bio_root,omitempty" validate:"required"`       // Root of <marker>/bio.json
	RawContentBaseURL  string `json:"raw_content_base_url,omitempty" validate:"required,url"`
	Branch             string `json:"branch,omitempty" validate:"required"`

	// Showcase
	ShowcaseURLFile    string `json:"showcase_url_file,omitempty" validate:"required"`
	ShowcaseOutputFile string `json:"showcase_output_file,omitempty" validate:"required"`
	CardSelector       string `json:"card_selector,omitempty" validate:"required"`

	// Fetching
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty" validate:"gt=0,lte=600"`
	Concurrency         int    `json:"concurrency,omitempty" validate:"gt=0,lte=64"`
	UserAgent           string `json:"user_agent,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the layout of a techfolio directory site.
func Defaults() Config {
	return Config{
		ProfileEntriesFile:  "profile-entries.json",
		DataFile:            filepath.Join("_data", "data.json"),
		SortField:           "last",
		LocalBioRoot:        "_tmpbios",
		RawContentBaseURL:   "https://raw.githubusercontent.com",
		Branch:              "master",
		ShowcaseURLFile:     filepath.Join("_data", "Hall-Of-Frame.json"),
		ShowcaseOutputFile:  filepath.Join("_includes", "hallOfFrameCards.html"),
		CardSelector:        ".card",
		FetchTimeoutSeconds: 30,
		Concurrency:         8,
	}
}

// FetchTimeout returns the per-request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// LoadConfig returns Defaults overlaid with the JSON5 file at path and then with
// its sibling "<name>.local.<ext>" file. Missing files are skipped.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	cfg := Defaults()
	for _, candidate := range []string{path, localPath(path)} {
		if err := overlay(&cfg, candidate); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// localPath turns "dir/techfolio.json5" into "dir/techfolio.local.json5".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func overlay(cfg *Config, path string) error {
	var override Config
	err := parsing.LooseFile(path, &override)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config file %s: %w", path, err)
	}
	return nil
}

// envBindings maps TECHFOLIO_* variables to string fields.
var envBindings = []struct {
	name  string
	field func(*Config) *string
}{
	{"TECHFOLIO_PROFILE_ENTRIES", func(c *Config) *string { return &c.ProfileEntriesFile }},
	{"TECHFOLIO_DATA_FILE", func(c *Config) *string { return &c.DataFile }},
	{"TECHFOLIO_SORT_FIELD", func(c *Config) *string { return &c.SortField }},
	{"TECHFOLIO_LOCAL_BIO_ROOT", func(c *Config) *string { return &c.LocalBioRoot }},
	{"TECHFOLIO_RAW_BASE_URL", func(c *Config) *string { return &c.RawContentBaseURL }},
	{"TECHFOLIO_BRANCH", func(c *Config) *string { return &c.Branch }},
	{"TECHFOLIO_SHOWCASE_URLS", func(c *Config) *string { return &c.ShowcaseURLFile }},
	{"TECHFOLIO_SHOWCASE_OUTPUT", func(c *Config) *string { return &c.ShowcaseOutputFile }},
	{"TECHFOLIO_CARD_SELECTOR", func(c *Config) *string { return &c.CardSelector }},
	{"TECHFOLIO_USER_AGENT", func(c *Config) *string { return &c.UserAgent }},
}

// ApplyEnv overrides fields from TECHFOLIO_* environment variables.
func (c *Config) ApplyEnv() error {
	for _, binding := range envBindings {
		if v, ok := os.LookupEnv(binding.name); ok && v != "" {
			*binding.field(c) = v
		}
	}

	if v := os.Getenv("TECHFOLIO_FETCH_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: TECHFOLIO_FETCH_TIMEOUT_SECONDS: %w", err)
		}
		c.FetchTimeoutSeconds = n
	}
	if v := os.Getenv("TECHFOLIO_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: TECHFOLIO_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv("TECHFOLIO_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: TECHFOLIO_VERBOSE: %w", err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
