package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStub_UnmarshalKeepsExtra(t *testing.T) {
	data := `{"techfolio":"alice.github.io","last":"Smith","level":"undergrad","year":2019}`

	var stub ProfileStub
	require.NoError(t, json.Unmarshal([]byte(data), &stub))

	assert.Equal(t, "alice.github.io", stub.Techfolio)
	assert.Equal(t, "Smith", stub.Last)
	assert.Equal(t, "undergrad", stub.Extra["level"])
	assert.InDelta(t, 2019, stub.Extra["year"], 0)
	assert.NotContains(t, stub.Extra, "techfolio")
}

func TestProfileStub_MarshalMergesExtra(t *testing.T) {
	stub := ProfileStub{
		Techfolio: "alice.github.io",
		Name:      "Alice",
		Interests: []string{"Go"},
		Extra:     map[string]any{"level": "grad", "name": "ignored"},
	}

	data, err := json.Marshal(stub)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "alice.github.io", got["techfolio"])
	assert.Equal(t, "Alice", got["name"], "typed field wins over extra")
	assert.Equal(t, "grad", got["level"])
	assert.NotContains(t, got, "summary", "empty fields are omitted")
}

func TestProfileStub_RoundTripPreservesUnknownKeys(t *testing.T) {
	data := `{"first":"Bob","techfolio":"bob.github.io","tags":["a","b"]}`

	var stub ProfileStub
	require.NoError(t, json.Unmarshal([]byte(data), &stub))
	out, err := json.Marshal(stub)
	require.NoError(t, err)

	assert.JSONEq(t, data, string(out))
}

func TestProfileStub_Field(t *testing.T) {
	stub := ProfileStub{
		Last:  "Nguyen",
		First: "Kim",
		Extra: map[string]any{"cohort": "2020", "year": 2020},
	}
	assert.Equal(t, "Nguyen", stub.Field("last"))
	assert.Equal(t, "Kim", stub.Field("first"))
	assert.Equal(t, "2020", stub.Field("cohort"))
	assert.Equal(t, "", stub.Field("year"), "non-string extras sort as empty")
	assert.Equal(t, "", stub.Field("missing"))
}

func TestProfileStub_HasLocalBio(t *testing.T) {
	assert.True(t, (&ProfileStub{TmpBio: "alice"}).HasLocalBio())
	assert.False(t, (&ProfileStub{Techfolio: "alice.github.io"}).HasLocalBio())
}

func TestBioDocument_IsEmpty(t *testing.T) {
	var nilDoc *BioDocument
	assert.True(t, nilDoc.IsEmpty())
	assert.True(t, (&BioDocument{}).IsEmpty())
	assert.False(t, (&BioDocument{Basics: BioBasics{Name: "Alice"}}).IsEmpty())
	assert.False(t, (&BioDocument{Interests: []BioInterest{{Name: "Go"}}}).IsEmpty())
}

func TestBioDocument_InterestNames(t *testing.T) {
	doc := BioDocument{Interests: []BioInterest{
		{Name: "Software Engineering", Keywords: []string{"go"}},
		{Name: ""},
		{Name: "Music"},
	}}
	assert.Equal(t, []string{"Software Engineering", "Music"}, doc.InterestNames())
	assert.Empty(t, (&BioDocument{}).InterestNames())
}

func TestProfileStub_MarshalEscapingFollowsEncoder(t *testing.T) {
	stub := ProfileStub{Summary: "I like <b>Go</b> & Rust"}

	escaped, err := json.Marshal(stub)
	require.NoError(t, err)
	assert.Contains(t, string(escaped), `\u003cb\u003eGo`)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(stub))
	assert.Contains(t, buf.String(), "<b>Go</b> & Rust")
}
