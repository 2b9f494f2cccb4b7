package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/techfolio-aggregator/internal/types"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newBioServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/alice/alice.github.io/master/_data/bio.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{basics: {name: "Alice Smith", website: "https://alice.github.io"}, interests: [{name: "Go"}]}`))
	})
	mux.HandleFunc("/essays/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<div class="card"><a href="e1.html">E1</a></div>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCheckBio_ValidFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bio.json"),
		`{basics: {name: "Alice", website: "https://alice.github.io"}, interests: [{name: "Go"}],}`)

	stdout, _, err := executeCommand(t, "check-bio", "--config", filepath.Join(t.TempDir(), "none.json5"), path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")
	assert.Contains(t, stdout, "1 interests")
}

func TestCheckBio_SchemaViolation(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bio.json"), `{basics: {name: "Alice"}}`)

	stdout, _, err := executeCommand(t, "check-bio", "--config", filepath.Join(t.TempDir(), "none.json5"), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields: basics")
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, stdout, "website")
}

func TestCheckBio_Host(t *testing.T) {
	server := newBioServer(t)

	cfgPath := writeFile(t, filepath.Join(t.TempDir(), "techfolio.json5"),
		`{raw_content_base_url: "`+server.URL+`"}`)
	stdout, _, err := executeCommand(t, "check-bio", "--config", cfgPath, "--host", "alice.github.io")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")
	assert.Contains(t, stdout, "Alice Smith")
}

func TestCheckBio_RequiresExactlyOneSource(t *testing.T) {
	_, _, err := executeCommand(t, "check-bio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either a bio.json path or --host")

	_, _, err = executeCommand(t, "check-bio", "--host", "alice.github.io", "bio.json")
	require.Error(t, err)
}

func TestProfilesCommand_JSONSummary(t *testing.T) {
	server := newBioServer(t)
	dir := t.TempDir()
	entries := writeFile(t, filepath.Join(dir, "profile-entries.json"),
		`[{techfolio: "alice.github.io", last: "Smith"}]`)
	data := filepath.Join(dir, "out", "data.json")

	stdout, _, err := executeCommand(t, "profiles",
		"--config", filepath.Join(dir, "none.json5"),
		"--entries", entries,
		"--data", data,
		"--raw-base-url", server.URL,
		"--json")
	require.NoError(t, err)

	var summary types.RunSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 1, summary.StubsLoaded)
	assert.Equal(t, 1, summary.BiosMerged)
	assert.True(t, summary.ProfileWritten)
	assert.False(t, summary.ShowcaseWritten)

	raw, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "Alice Smith"`)
}

func TestShowcaseCommand_PrintsSummary(t *testing.T) {
	server := newBioServer(t)
	dir := t.TempDir()
	urls := writeFile(t, filepath.Join(dir, "Hall-Of-Frame.json"), `["`+server.URL+`/essays/e1.html"]`)
	out := filepath.Join(dir, "_includes", "cards.html")

	stdout, _, err := executeCommand(t, "showcase",
		"--config", filepath.Join(dir, "none.json5"),
		"--showcase-urls", urls,
		"--showcase-out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "TECHFOLIO UPDATE")

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), server.URL+"/e1.html")
	assert.Contains(t, string(html), `target="_blank"`)
}

func TestUpdateCommand_MissingEntriesFails(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCommand(t, "update",
		"--config", filepath.Join(dir, "none.json5"),
		"--entries", filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile entries")
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, filepath.Join(dir, "techfolio.json5"), `{
		// File values override defaults.
		data_file: "from-file.json",
		sort_field: "first",
		concurrency: 2,
	}`)
	writeFile(t, filepath.Join(dir, "techfolio.local.json5"), `{sort_field: "name"}`)
	t.Setenv("TECHFOLIO_CONCURRENCY", "3")

	cmd := &cobra.Command{Use: "test"}
	addProfileFlags(cmd)
	addFetchFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--data", "from-flag.json", "--timeout", "7"}))

	configPath = cfgPath
	t.Cleanup(func() { configPath = "" })

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", cfg.DataFile)
	assert.Equal(t, "name", cfg.SortField)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 7, cfg.FetchTimeoutSeconds)
	assert.Equal(t, "profile-entries.json", cfg.ProfileEntriesFile)
}

func TestResolveConfig_InvalidFlagValue(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFetchFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--concurrency", "500"}))

	configPath = filepath.Join(t.TempDir(), "none.json5")
	t.Cleanup(func() { configPath = "" })

	_, err := resolveConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Concurrency")
}
