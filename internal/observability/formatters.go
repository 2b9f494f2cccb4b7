// Package observability provides logging setup and formatted output utilities for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/techfolio-aggregator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs a human-readable summary of an aggregation run.
func (p *Printer) PrintSummary(summary *types.RunSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Run:      %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Profiles: %d (%d local, %d remote)\n",
		summary.StubsLoaded, summary.LocalStubs, summary.RemoteStubs))
	sb.WriteString(fmt.Sprintf("Bios:     %d merged, %d failed, %d unmatched\n",
		summary.BiosMerged, summary.BiosFailed, summary.BiosUnmatched))

	if len(summary.UnmatchedHosts) > 0 {
		sb.WriteString("Unmatched:\n")
		count := min(len(summary.UnmatchedHosts), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", summary.UnmatchedHosts[i]))
		}
		if len(summary.UnmatchedHosts) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.UnmatchedHosts)-maxItemsToShow))
		}
	}

	if summary.ProfileFile != "" {
		sb.WriteString(fmt.Sprintf("Data:     %s%s\n", summary.ProfileFile, writtenMark(summary.ProfileWritten)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Showcase: %d pages, %d cards, %d missed, %d failed\n",
		summary.ShowcaseURLs, summary.CardsWritten, summary.CardsMissed, summary.PagesFailed))
	sb.WriteString(fmt.Sprintf("Listings: %d fetched, %d reused\n",
		summary.ListingsFetched, summary.ListingsReused))
	if summary.ShowcaseFile != "" {
		sb.WriteString(fmt.Sprintf("Cards:    %s%s\n", summary.ShowcaseFile, writtenMark(summary.ShowcaseWritten)))
	}

	p.printBox("TECHFOLIO UPDATE", strings.TrimSuffix(sb.String(), "\n"))
}

func writtenMark(written bool) string {
	if written {
		return ""
	}
	return " (not written)"
}
