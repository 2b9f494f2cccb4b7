// Package showcase builds the "hall of frame" fragment: for every featured essay
// or project page it lifts the matching card from the page's listing, makes its
// links absolute and concatenates the cards in a stable order.
package showcase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/techfolio-aggregator/internal/parsing"
)

const (
	essaySegment   = "/essays/"
	projectSegment = "/projects/"
)

// LoadURLs reads the loosely formatted JSON list of showcase page URLs.
func LoadURLs(path string) ([]string, error) {
	var urls []string
	if err := parsing.LooseFile(path, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// Order returns essays first, then projects, each in input order. URLs in neither
// category are dropped. A URL containing both segments counts as an essay.
func Order(urls []string) []string {
	var essays, projects []string
	for _, u := range urls {
		switch {
		case strings.Contains(u, essaySegment):
			essays = append(essays, u)
		case strings.Contains(u, projectSegment):
			projects = append(projects, u)
		}
	}
	return append(essays, projects...)
}

// Write stores the concatenated cards at path, creating parent directories.
func Write(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ScrapeError{URL: path, Message: "failed to create output directory", Cause: err}
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return &ScrapeError{URL: path, Message: "failed to write showcase file", Cause: err}
	}
	return nil
}
