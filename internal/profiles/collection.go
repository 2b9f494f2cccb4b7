// Package profiles holds the profile stub collection: loading the entries list,
// filling stubs from bio documents and writing the sorted result.
package profiles

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jonathan/techfolio-aggregator/internal/parsing"
	"github.com/jonathan/techfolio-aggregator/internal/types"
)

// Collection is the in-memory list of profile stubs for one run. Stubs are filled
// in place and never removed.
type Collection struct {
	stubs  []*types.ProfileStub
	logger *slog.Logger
}

// New wraps stubs in a Collection. A nil logger uses slog.Default().
func New(stubs []types.ProfileStub, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collection{
		stubs:  make([]*types.ProfileStub, 0, len(stubs)),
		logger: logger,
	}
	for i := range stubs {
		stub := stubs[i]
		c.stubs = append(c.stubs, &stub)
	}
	return c
}

// Load reads a loosely formatted JSON array of profile entries from path.
func Load(path string, logger *slog.Logger) (*Collection, error) {
	var raw []map[string]any
	if err := parsing.LooseFile(path, &raw); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse entries", Cause: err}
	}

	stubs := make([]types.ProfileStub, 0, len(raw))
	for i, entry := range raw {
		stub, err := decodeStub(entry)
		if err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("entry %d", i), Cause: err}
		}
		stubs = append(stubs, stub)
	}

	c := New(stubs, logger)
	for i, stub := range c.stubs {
		if stub.Techfolio == "" && !stub.HasLocalBio() {
			c.logger.Warn("profile entry has neither techfolio nor tmpbio", "index", i)
		}
	}
	return c, nil
}

func decodeStub(entry map[string]any) (types.ProfileStub, error) {
	var stub types.ProfileStub
	data, err := json.Marshal(entry)
	if err != nil {
		return stub, err
	}
	if err := json.Unmarshal(data, &stub); err != nil {
		return stub, err
	}
	return stub, nil
}

// Len returns the number of stubs.
func (c *Collection) Len() int {
	return len(c.stubs)
}

// Stubs returns the stubs in load order. The pointers are live.
func (c *Collection) Stubs() []*types.ProfileStub {
	return c.stubs
}

// Local returns the stubs whose bio is read from a local directory.
func (c *Collection) Local() []*types.ProfileStub {
	var local []*types.ProfileStub
	for _, stub := range c.stubs {
		if stub.HasLocalBio() {
			local = append(local, stub)
		}
	}
	return local
}

// Remote returns the stubs whose bio is fetched over HTTP.
func (c *Collection) Remote() []*types.ProfileStub {
	var remote []*types.ProfileStub
	for _, stub := range c.stubs {
		if !stub.HasLocalBio() {
			remote = append(remote, stub)
		}
	}
	return remote
}
