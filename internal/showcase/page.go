package showcase

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// PageParts are the URLs derived from one showcase page.
//
// For https://alice.github.io/essays/first.html:
//
//	ListingURL   https://alice.github.io/essays/
//	DocumentName first.html
//	BaseURL      https://alice.github.io
type PageParts struct {
	URL          string
	ListingURL   string
	DocumentName string
	BaseURL      string
}

// SplitPage derives the listing page, document name and link base of pageURL.
// A trailing slash on pageURL is ignored so "essays/first/" names "first".
func SplitPage(pageURL string) PageParts {
	trimmed := strings.TrimRight(pageURL, "/")
	idx := strings.LastIndex(trimmed, "/")

	parts := PageParts{URL: pageURL}
	parts.ListingURL = trimmed[:idx+1]
	parts.DocumentName = trimmed[idx+1:]

	base := strings.TrimSuffix(parts.ListingURL, "/")
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[:i]
	}
	parts.BaseURL = base
	return parts
}

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsAbsolute reports whether ref carries a scheme (https:, mailto:, data:) or is
// protocol-relative.
func IsAbsolute(ref string) bool {
	return schemePrefix.MatchString(ref) || strings.HasPrefix(ref, "//")
}

// ToAbsoluteURL prefixes a relative ref with base, joined by exactly one slash.
// Absolute refs are returned unchanged.
func ToAbsoluteURL(ref, base string) string {
	if IsAbsolute(ref) {
		return ref
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(ref, "/")
}

// lastSegment returns the final path segment of a link, ignoring query, fragment
// and a trailing slash.
func lastSegment(ref string) string {
	if u, err := url.Parse(ref); err == nil {
		ref = u.Path
	}
	ref = strings.TrimRight(ref, "/")
	if ref == "" {
		return ""
	}
	return path.Base(ref)
}
