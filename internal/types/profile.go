// Package types provides type definitions for the records flowing through the
// techfolio aggregation pipelines.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProfileStub is one entry of the profile-entries list. Known display fields are
// typed; every other key is kept in Extra and written back unchanged.
type ProfileStub struct {
	Techfolio string   `json:"techfolio,omitempty"`
	TmpBio    string   `json:"tmpbio,omitempty"`
	First     string   `json:"first,omitempty"`
	Last      string   `json:"last,omitempty"`
	Name      string   `json:"name,omitempty"`
	Label     string   `json:"label,omitempty"`
	Website   string   `json:"website,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Picture   string   `json:"picture,omitempty"`
	Interests []string `json:"interests,omitempty"`

	Extra map[string]any `json:"-"`
}

// knownProfileKeys lists the JSON keys decoded into typed fields.
var knownProfileKeys = []string{
	"techfolio", "tmpbio", "first", "last", "name",
	"label", "website", "summary", "picture", "interests",
}

// HasLocalBio reports whether the stub reads its bio from disk instead of the network.
func (p *ProfileStub) HasLocalBio() bool {
	return p.TmpBio != ""
}

// Field returns the string value of a sortable field by its JSON key.
// Unknown keys fall back to Extra when the value there is a string.
func (p *ProfileStub) Field(key string) string {
	switch key {
	case "techfolio":
		return p.Techfolio
	case "tmpbio":
		return p.TmpBio
	case "first":
		return p.First
	case "last":
		return p.Last
	case "name":
		return p.Name
	case "label":
		return p.Label
	case "website":
		return p.Website
	case "summary":
		return p.Summary
	case "picture":
		return p.Picture
	}
	if s, ok := p.Extra[key].(string); ok {
		return s
	}
	return ""
}

// UnmarshalJSON decodes the typed fields and keeps the remaining keys in Extra.
func (p *ProfileStub) UnmarshalJSON(data []byte) error {
	type plain ProfileStub
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("failed to decode profile stub: %w", err)
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("failed to decode profile stub: %w", err)
	}
	for _, key := range knownProfileKeys {
		delete(all, key)
	}
	if len(all) > 0 {
		known.Extra = all
	}

	*p = ProfileStub(known)
	return nil
}

// MarshalJSON writes typed fields and Extra as one object with sorted keys.
// Typed fields win over Extra keys of the same name. HTML escaping of the result
// is decided by the caller's encoder: json.Marshal escapes <, > and &, an Encoder
// with SetEscapeHTML(false) keeps them.
func (p ProfileStub) MarshalJSON() ([]byte, error) {
	type plain ProfileStub
	typed, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(p.Extra)+len(knownProfileKeys))
	for k, v := range p.Extra {
		out[k] = v
	}

	var fields map[string]any
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}

	// Leave <, > and & literal here; escaping them now could not be undone by
	// the caller's encoder.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
