package profiles

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/techfolio-aggregator/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_LooseEntries(t *testing.T) {
	path := writeFile(t, "profile-entries.json", `[
		{techfolio: "alice.github.io", first: "Alice", last: "Smith", level: "undergrad"},
		{tmpbio: "bob", first: "Bob", last: "Jones",},
	]`)

	c, err := Load(path, quietLogger())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	alice := c.Stubs()[0]
	assert.Equal(t, "alice.github.io", alice.Techfolio)
	assert.Equal(t, "undergrad", alice.Extra["level"])
	assert.Equal(t, "bob", c.Stubs()[1].TmpBio)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), quietLogger())
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad_BadEntryType(t *testing.T) {
	path := writeFile(t, "profile-entries.json", `[{techfolio: 42}]`)
	_, err := Load(path, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 0")
}

func TestLocalRemotePartition(t *testing.T) {
	c := New([]types.ProfileStub{
		{Techfolio: "alice.github.io"},
		{TmpBio: "bob"},
		{Techfolio: "carol.github.io"},
		{Techfolio: "dave.github.io", TmpBio: "dave"},
	}, quietLogger())

	local := c.Local()
	remote := c.Remote()
	require.Len(t, local, 2)
	require.Len(t, remote, 2)
	assert.Equal(t, "bob", local[0].TmpBio)
	assert.Equal(t, "dave", local[1].TmpBio)
	assert.Equal(t, "alice.github.io", remote[0].Techfolio)
	assert.Equal(t, "carol.github.io", remote[1].Techfolio)
}

func TestNew_CopiesInput(t *testing.T) {
	input := []types.ProfileStub{{Techfolio: "alice.github.io"}}
	c := New(input, nil)
	c.Stubs()[0].Name = "Alice"
	assert.Empty(t, input[0].Name)
}

func TestSorted_ByLastThenMissingLast(t *testing.T) {
	c := New([]types.ProfileStub{
		{Techfolio: "zed.github.io"},
		{Techfolio: "c.github.io", Last: "Chen"},
		{Techfolio: "a.github.io", Last: "Adams"},
		{Techfolio: "b.github.io", Last: "Chen"},
	}, quietLogger())

	got := c.Sorted("")
	hosts := make([]string, 0, len(got))
	for _, s := range got {
		hosts = append(hosts, s.Techfolio)
	}
	assert.Equal(t, []string{"a.github.io", "c.github.io", "b.github.io", "zed.github.io"}, hosts)
}

func TestSorted_DoesNotReorderCollection(t *testing.T) {
	c := New([]types.ProfileStub{
		{Techfolio: "b.github.io", Last: "B"},
		{Techfolio: "a.github.io", Last: "A"},
	}, quietLogger())
	_ = c.Sorted("last")
	assert.Equal(t, "b.github.io", c.Stubs()[0].Techfolio)
}

func TestEncode_KeepsHTMLAndSortsKeys(t *testing.T) {
	c := New([]types.ProfileStub{{
		Techfolio: "alice.github.io",
		Summary:   "I like <b>Go</b> & Rust",
		Extra:     map[string]any{"year": "2019", "level": "grad"},
	}}, quietLogger())

	data, err := c.Encode("")
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"summary": "I like <b>Go</b> & Rust"`)
	assert.NotContains(t, out, `\u003c`)

	// Entry keys are written in alphabetical order, not input order.
	level := strings.Index(out, `"level"`)
	summary := strings.Index(out, `"summary"`)
	techfolio := strings.Index(out, `"techfolio"`)
	year := strings.Index(out, `"year"`)
	assert.True(t, level < summary && summary < techfolio && techfolio < year, out)
}

func TestWrite_SortedPrettyJSON(t *testing.T) {
	c := New([]types.ProfileStub{
		{Techfolio: "b.github.io", Last: "Brown", Summary: "A & B"},
		{Techfolio: "a.github.io", Last: "Adams", Extra: map[string]any{"level": "grad"}},
	}, quietLogger())

	path := filepath.Join(t.TempDir(), "_data", "data.json")
	require.NoError(t, c.Write(path, DefaultSortField))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("]\n")))
	assert.Contains(t, string(data), "\n  {\n    \"last\": \"Adams\"")
	assert.Contains(t, string(data), `"summary": "A & B"`)
	assert.Less(t, bytes.Index(data, []byte("Adams")), bytes.Index(data, []byte("Brown")))

	reloaded, err := Load(path, quietLogger())
	require.NoError(t, err)
	want := []types.ProfileStub{
		{Techfolio: "a.github.io", Last: "Adams", Extra: map[string]any{"level": "grad"}},
		{Techfolio: "b.github.io", Last: "Brown", Summary: "A & B"},
	}
	got := make([]types.ProfileStub, 0, reloaded.Len())
	for _, s := range reloaded.Stubs() {
		got = append(got, *s)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("reloaded profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_FailureReturnsWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	c := New([]types.ProfileStub{{Techfolio: "a.github.io"}}, quietLogger())
	err := c.Write(filepath.Join(blocker, "data.json"), "")
	require.Error(t, err)

	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
}
