package showcase

import (
	"errors"
	"fmt"
)

// ErrCardNotFound is returned when a listing page has no card for the requested page.
var ErrCardNotFound = errors.New("no card matches page")

// ScrapeError represents a failure extracting the card for one showcase page.
type ScrapeError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}
