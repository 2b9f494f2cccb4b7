// Package canonical normalizes techfolio host names and URLs so that profile stubs
// and bio documents can be joined on a single comparable key.
package canonical

import "strings"

// DefaultScheme is prepended to host names that carry no scheme.
const DefaultScheme = "https://"

// schemeToken is the prefix that marks a string as already scheme-qualified.
// Both http:// and https:// start with it.
const schemeToken = "http"

// HostName returns the canonical form of a host name or URL: lowercased, without
// trailing slashes and with an https:// scheme prepended when missing.
// It never fails and HostName(HostName(s)) == HostName(s); the degenerate inputs
// "", "/" and "//" all settle on "https:".
func HostName(name string) string {
	canonical := strings.TrimRight(strings.ToLower(name), "/")
	if !strings.HasPrefix(canonical, schemeToken) {
		canonical = strings.TrimRight(DefaultScheme+canonical, "/")
	}
	return canonical
}

// Equal reports whether a and b name the same techfolio, ignoring case, trailing
// slashes and the scheme.
func Equal(a, b string) bool {
	return joinKey(a) == joinKey(b)
}

func joinKey(name string) string {
	return HostName(StripScheme(strings.ToLower(name)))
}

// StripScheme returns the part of rawURL after its "://" separator.
// Strings without a separator are returned unchanged.
func StripScheme(rawURL string) string {
	if i := strings.Index(rawURL, "://"); i >= 0 {
		return rawURL[i+len("://"):]
	}
	return rawURL
}

// BareHost strips the scheme and any trailing slash, leaving "alice.github.io".
func BareHost(rawURL string) string {
	return strings.TrimSuffix(StripScheme(strings.TrimSpace(rawURL)), "/")
}

// EnsureScheme prefixes a picture or link URL with https:// when it has no scheme.
// Empty input stays empty.
func EnsureScheme(rawURL string) string {
	if rawURL == "" || strings.HasPrefix(rawURL, schemeToken) {
		return rawURL
	}
	return DefaultScheme + rawURL
}
