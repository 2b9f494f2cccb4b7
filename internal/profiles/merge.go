package profiles

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/antzucaro/matchr"

	"github.com/jonathan/techfolio-aggregator/internal/canonical"
	"github.com/jonathan/techfolio-aggregator/internal/types"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestionThreshold = 0.85

// MergeOutcome describes what Merge did with a bio document.
type MergeOutcome int

const (
	// MergeEmpty means the bio carried no data and nothing changed.
	MergeEmpty MergeOutcome = iota
	// MergeMatched means a stub was found and its absent fields were filled.
	MergeMatched
	// MergeUnmatched means no stub declared the bio's website.
	MergeUnmatched
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeEmpty:
		return "empty"
	case MergeMatched:
		return "matched"
	case MergeUnmatched:
		return "unmatched"
	}
	return fmt.Sprintf("MergeOutcome(%d)", int(o))
}

// Find returns the first stub whose techfolio names the same host, ignoring case,
// trailing slashes and the scheme.
func (c *Collection) Find(host string) *types.ProfileStub {
	for _, stub := range c.stubs {
		if stub.Techfolio == "" {
			continue
		}
		if canonical.Equal(stub.Techfolio, host) {
			return stub
		}
	}
	return nil
}

// Merge joins bio to its stub by canonical host and fills only the stub's absent
// display fields. Fields already present are never overwritten, so the first bio
// to reach a stub wins. An unmatched bio is logged and dropped.
func (c *Collection) Merge(bio types.BioDocument) MergeOutcome {
	if bio.IsEmpty() {
		return MergeEmpty
	}

	bioHost := canonical.StripScheme(bio.Basics.Website)
	if bioHost == "" {
		c.logger.Warn("bio has no website, cannot match a profile entry", "name", bio.Basics.Name)
		return MergeUnmatched
	}

	stub := c.Find(bioHost)
	if stub == nil {
		attrs := []any{"host", bioHost, "name", bio.Basics.Name}
		if suggestion := c.nearest(bioHost); suggestion != "" {
			attrs = append(attrs, "did_you_mean", suggestion)
		}
		c.logger.Warn("could not find profile entry for bio", attrs...)
		return MergeUnmatched
	}

	if err := mergo.Merge(stub, fillFrom(bio)); err != nil {
		// Both sides are types.ProfileStub values, so mergo cannot reject them.
		c.logger.Error("failed to merge bio into profile entry", "host", bioHost, "err", err)
		return MergeUnmatched
	}
	return MergeMatched
}

// fillFrom builds the candidate display fields derived from a bio.
func fillFrom(bio types.BioDocument) types.ProfileStub {
	return types.ProfileStub{
		Name:      bio.Basics.Name,
		Label:     bio.Basics.Label,
		Website:   canonical.HostName(bio.Basics.Website),
		Summary:   bio.Basics.Summary,
		Picture:   canonical.EnsureScheme(bio.Basics.Picture),
		Interests: bio.InterestNames(),
	}
}

// nearest returns the techfolio most similar to host, if it is close enough to be
// a likely typo.
func (c *Collection) nearest(host string) string {
	// Compare bare hosts so the shared scheme prefix does not inflate scores.
	target := strings.ToLower(canonical.BareHost(host))
	best, bestScore := "", 0.0
	for _, stub := range c.stubs {
		if stub.Techfolio == "" {
			continue
		}
		candidate := strings.ToLower(canonical.BareHost(stub.Techfolio))
		score := matchr.JaroWinkler(target, candidate, false)
		if score > bestScore {
			best, bestScore = stub.Techfolio, score
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
