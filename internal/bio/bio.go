// Package bio locates and decodes techfolio bio documents, either from the raw
// content host that serves a techfolio's repository or from a local directory.
package bio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonathan/techfolio-aggregator/internal/canonical"
	"github.com/jonathan/techfolio-aggregator/internal/fetch"
	"github.com/jonathan/techfolio-aggregator/internal/parsing"
	"github.com/jonathan/techfolio-aggregator/internal/schemas"
	"github.com/jonathan/techfolio-aggregator/internal/types"
)

const (
	// DefaultRawBaseURL serves raw repository files.
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	// DefaultBranch is the branch the bio document is read from.
	DefaultBranch = "master"
	// DocumentPath is the bio location inside a techfolio repository.
	DocumentPath = "_data/bio.json"
	// LocalFileName is the bio file name inside a local bio directory.
	LocalFileName = "bio.json"
)

// Result is the outcome of fetching one remote bio. Document is empty whenever Err
// is set, so callers can merge every Result without checking Err.
type Result struct {
	Host     string
	URL      string
	Document types.BioDocument
	Err      error
}

// OK reports whether the fetch produced a document.
func (r Result) OK() bool {
	return r.Err == nil && !r.Document.IsEmpty()
}

// Decoded is a parsed bio together with any advisory schema violations.
type Decoded struct {
	Document   types.BioDocument
	Violations error
}

// Config configures a Fetcher.
type Config struct {
	RawBaseURL string
	Branch     string
	LocalRoot  string
	Client     *fetch.Client
	Logger     *slog.Logger
}

// Fetcher retrieves bio documents. It is safe for concurrent use.
type Fetcher struct {
	client     *fetch.Client
	rawBaseURL string
	branch     string
	localRoot  string
	logger     *slog.Logger
}

// NewFetcher builds a Fetcher, filling unset Config fields with defaults.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.RawBaseURL == "" {
		cfg.RawBaseURL = DefaultRawBaseURL
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.Client == nil {
		cfg.Client = fetch.NewClient(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Fetcher{
		client:     cfg.Client,
		rawBaseURL: cfg.RawBaseURL,
		branch:     cfg.Branch,
		localRoot:  cfg.LocalRoot,
		logger:     cfg.Logger,
	}
}

// Account returns the repository owner for a techfolio host: its first dot label.
func Account(host string) string {
	bare := canonical.BareHost(host)
	account, _, _ := strings.Cut(bare, ".")
	return account
}

// URLFor builds <rawBase>/<account>/<host>/<branch>/_data/bio.json.
func URLFor(rawBase, branch, host string) string {
	bare := canonical.BareHost(host)
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimRight(rawBase, "/"), Account(bare), bare, branch, DocumentPath)
}

// URL returns the remote bio URL for host using the fetcher's settings.
func (f *Fetcher) URL(host string) string {
	return URLFor(f.rawBaseURL, f.branch, host)
}

// FetchRemote fetches and decodes the bio for a techfolio host in a single attempt.
// It never returns an error: failures are logged and reported through Result.Err
// with an empty Document.
func (f *Fetcher) FetchRemote(ctx context.Context, host string) Result {
	bioURL := f.URL(host)
	result := Result{Host: host, URL: bioURL}

	resp, err := f.client.Get(ctx, bioURL)
	if err != nil {
		f.logger.Warn("failed to get bio.json", "host", host, "url", bioURL, "err", err)
		result.Err = err
		return result
	}

	decoded, err := Decode(bioURL, resp.Body)
	if err != nil {
		f.logger.Warn("failed to parse bio.json", "host", host, "url", bioURL, "err", err)
		result.Err = err
		return result
	}
	f.reportViolations(host, decoded.Violations)

	result.Document = decoded.Document
	return result
}

// LocalPath returns <LocalRoot>/<marker>/bio.json.
func (f *Fetcher) LocalPath(marker string) string {
	return filepath.Join(f.localRoot, marker, LocalFileName)
}

// LoadLocal reads and decodes the bio stored under the local marker directory.
// Unlike FetchRemote, read and parse errors are returned to the caller.
func (f *Fetcher) LoadLocal(marker string) (types.BioDocument, error) {
	path := f.LocalPath(marker)

	var raw any
	if err := parsing.LooseFile(path, &raw); err != nil {
		return types.BioDocument{}, err
	}
	decoded, err := fromRaw(path, raw)
	if err != nil {
		return types.BioDocument{}, err
	}
	f.reportViolations(marker, decoded.Violations)
	return decoded.Document, nil
}

// Decode parses a loosely formatted bio document. Schema violations do not fail
// the decode; they are returned in Decoded.Violations.
func Decode(source string, data []byte) (Decoded, error) {
	var raw any
	if err := parsing.LooseSource(source, data, &raw); err != nil {
		return Decoded{}, err
	}
	return fromRaw(source, raw)
}

func fromRaw(source string, raw any) (Decoded, error) {
	if _, ok := raw.(map[string]any); !ok {
		return Decoded{}, &parsing.ParseError{Source: source, Message: "bio document is not an object"}
	}

	// The loose decode already accepted the document; re-encoding yields strict JSON.
	strict, err := json.Marshal(raw)
	if err != nil {
		return Decoded{}, &parsing.ParseError{Source: source, Message: "failed to re-encode bio", Cause: err}
	}
	var doc types.BioDocument
	if err := json.Unmarshal(strict, &doc); err != nil {
		return Decoded{}, &parsing.ParseError{Source: source, Message: "unexpected bio field types", Cause: err}
	}

	return Decoded{Document: doc, Violations: schemas.ValidateBio(raw)}, nil
}

func (f *Fetcher) reportViolations(source string, violations error) {
	if violations != nil {
		f.logger.Debug("bio.json does not match schema", "source", source, "err", violations)
	}
}
