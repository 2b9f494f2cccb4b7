package profiles

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/techfolio-aggregator/internal/types"
)

// DefaultSortField is the surname key the output list is ordered by.
const DefaultSortField = "last"

// Sorted returns a copy of the stubs ordered by field. Stubs missing the field sort
// last; equal keys keep load order.
func (c *Collection) Sorted(field string) []types.ProfileStub {
	if field == "" {
		field = DefaultSortField
	}
	out := make([]types.ProfileStub, 0, len(c.stubs))
	for _, stub := range c.stubs {
		out = append(out, *stub)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Field(field), out[j].Field(field)
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return out
}

// Encode renders the sorted stubs as 2-space indented JSON with a trailing newline.
func (c *Collection) Encode(field string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Sorted(field)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write persists the sorted stubs to path, creating parent directories.
func (c *Collection) Write(path, field string) error {
	data, err := c.Encode(field)
	if err != nil {
		return &WriteError{Path: path, Message: "failed to encode profiles", Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Message: "failed to create output directory", Cause: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Message: "failed to write file", Cause: err}
	}

	c.logger.Info("wrote profile data", "path", path, "profiles", len(c.stubs))
	return nil
}
