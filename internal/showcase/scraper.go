package showcase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/techfolio-aggregator/internal/fetch"
)

// DefaultConcurrency bounds the number of listing pages fetched at once.
const DefaultConcurrency = 4

// Config configures a Scraper.
type Config struct {
	Client       *fetch.Client
	CardSelector string
	Concurrency  int
	Logger       *slog.Logger
}

// Scraper extracts showcase cards. It is safe for concurrent use. Listing pages
// are fetched at most once per Scraper.
type Scraper struct {
	listings     *fetch.CachedFetcher
	cardSelector string
	concurrency  int
	logger       *slog.Logger
}

// Stats counts what a Scrape call produced.
type Stats struct {
	Pages       int
	Listings    int // distinct listing pages requested
	ListingHits int // page lookups answered by an already fetched listing
	Cards       int
	Missed      int
	Failed      int
}

// NewScraper builds a Scraper, filling unset Config fields with defaults.
func NewScraper(cfg Config) *Scraper {
	if cfg.Client == nil {
		cfg.Client = fetch.NewClient(nil)
	}
	if cfg.CardSelector == "" {
		cfg.CardSelector = DefaultCardSelector
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scraper{
		listings:     fetch.NewCachedFetcher(cfg.Client),
		cardSelector: cfg.CardSelector,
		concurrency:  cfg.Concurrency,
		logger:       cfg.Logger,
	}
}

// ScrapeCard fetches the listing page for pageURL and returns its rewritten card.
// A page without a matching card returns an error wrapping ErrCardNotFound.
func (s *Scraper) ScrapeCard(ctx context.Context, pageURL string) (string, error) {
	parts := SplitPage(pageURL)
	s.logger.Debug("reading page for hall of frame", "url", pageURL, "listing", parts.ListingURL)

	result, err := s.listings.Get(ctx, parts.ListingURL)
	if err != nil {
		return "", &ScrapeError{URL: pageURL, Message: "failed to fetch listing page", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		return "", &ScrapeError{URL: pageURL, Message: "failed to parse listing page", Cause: err}
	}

	card := FindCard(doc, s.cardSelector, parts.DocumentName)
	if card == nil {
		return "", &ScrapeError{URL: pageURL, Message: "card for " + parts.DocumentName, Cause: ErrCardNotFound}
	}

	html, err := RewriteCard(card, parts.BaseURL)
	if err != nil {
		return "", &ScrapeError{URL: pageURL, Message: "failed to render card", Cause: err}
	}
	return html, nil
}

// Scrape extracts one card per URL and concatenates them, each followed by a
// newline, in the order the URLs were given. Pages are fetched concurrently but
// the output order never depends on completion order. Failed pages and pages
// without a card are logged and contribute nothing.
func (s *Scraper) Scrape(ctx context.Context, urls []string) (string, Stats) {
	fragments := make([]string, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, pageURL := range urls {
		g.Go(func() error {
			fragments[i], errs[i] = s.ScrapeCard(ctx, pageURL)
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{Pages: len(urls), Listings: s.listings.Len(), ListingHits: s.listings.Hits()}
	var sb strings.Builder
	for i, pageURL := range urls {
		if err := errs[i]; err != nil {
			if errors.Is(err, ErrCardNotFound) {
				stats.Missed++
				s.logger.Warn("no card found for showcase page", "url", pageURL, "document", SplitPage(pageURL).DocumentName)
			} else {
				stats.Failed++
				s.logger.Warn("failed to read showcase page", "url", pageURL, "err", err)
			}
			continue
		}
		stats.Cards++
		sb.WriteString(fragments[i])
		sb.WriteString("\n")
	}
	return sb.String(), stats
}
