// Package pipeline orchestrates a techfolio update: the profile pipeline (load
// stubs, merge bios, write data) followed by the hall of frame showcase pipeline.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/techfolio-aggregator/internal/bio"
	"github.com/jonathan/techfolio-aggregator/internal/config"
	"github.com/jonathan/techfolio-aggregator/internal/fetch"
	"github.com/jonathan/techfolio-aggregator/internal/profiles"
	"github.com/jonathan/techfolio-aggregator/internal/showcase"
	"github.com/jonathan/techfolio-aggregator/internal/types"
)

// Stage names reported through ProgressEvent.
const (
	StageProfilesLoaded = "profiles_loaded"
	StageLocalBios      = "local_bios"
	StageRemoteBios     = "remote_bios"
	StageProfilesWrite  = "profiles_written"
	StageShowcase       = "showcase_written"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Config       config.Config
	SkipProfiles bool
	SkipShowcase bool
	Logger       *slog.Logger
	OnProgress   ProgressCallback
}

type runner struct {
	opts    RunOptions
	cfg     config.Config
	logger  *slog.Logger
	client  *fetch.Client
	summary *types.RunSummary
}

// Run executes the selected pipelines. Only a missing or unreadable profile
// entries file is returned as an error; every other failure is logged and
// reflected in the summary.
func Run(ctx context.Context, opts RunOptions) (*types.RunSummary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()

	r := &runner{
		opts:   opts,
		cfg:    opts.Config,
		logger: logger.With("run_id", runID),
		client: fetch.NewClient(&fetch.Options{
			Timeout:   opts.Config.FetchTimeout(),
			UserAgent: opts.Config.UserAgent,
		}),
		summary: &types.RunSummary{RunID: runID},
	}

	if !opts.SkipProfiles {
		if err := r.runProfiles(ctx); err != nil {
			return r.summary, err
		}
	}
	if !opts.SkipShowcase {
		r.runShowcase(ctx)
	}
	return r.summary, nil
}

func (r *runner) emit(stage, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{Stage: stage, Message: message, RunID: r.summary.RunID})
	}
}

func (r *runner) runProfiles(ctx context.Context) error {
	r.logger.Info("starting profile update", "entries", r.cfg.ProfileEntriesFile)

	collection, err := profiles.Load(r.cfg.ProfileEntriesFile, r.logger)
	if err != nil {
		return fmt.Errorf("failed to load profile entries: %w", err)
	}
	local, remote := collection.Local(), collection.Remote()
	r.summary.StubsLoaded = collection.Len()
	r.summary.LocalStubs = len(local)
	r.summary.RemoteStubs = len(remote)
	r.emit(StageProfilesLoaded, fmt.Sprintf("Loaded %d profile entries", collection.Len()))

	fetcher := bio.NewFetcher(bio.Config{
		RawBaseURL: r.cfg.RawContentBaseURL,
		Branch:     r.cfg.Branch,
		LocalRoot:  r.cfg.LocalBioRoot,
		Client:     r.client,
		Logger:     r.logger,
	})

	// Local bios are read and merged inline, before any network work.
	for _, stub := range local {
		doc, err := fetcher.LoadLocal(stub.TmpBio)
		if err != nil {
			r.logger.Warn("failed to read local bio.json", "tmpbio", stub.TmpBio, "path", fetcher.LocalPath(stub.TmpBio), "err", err)
			r.summary.BiosFailed++
			continue
		}
		r.record(collection.Merge(doc), doc)
	}
	r.emit(StageLocalBios, fmt.Sprintf("Merged %d local bios", len(local)))

	hosts := make([]string, 0, len(remote))
	for i, stub := range remote {
		if stub.Techfolio == "" {
			r.logger.Warn("skipping profile entry without techfolio", "index", i)
			continue
		}
		hosts = append(hosts, stub.Techfolio)
	}

	for _, result := range FetchBios(ctx, fetcher, hosts, r.cfg.Concurrency) {
		if result.Err != nil {
			r.summary.BiosFailed++
		}
		r.record(collection.Merge(result.Document), result.Document)
	}
	r.emit(StageRemoteBios, fmt.Sprintf("Fetched %d remote bios", len(hosts)))

	r.summary.ProfileFile = r.cfg.DataFile
	if err := collection.Write(r.cfg.DataFile, r.cfg.SortField); err != nil {
		r.logger.Error("failed to write profile data", "path", r.cfg.DataFile, "err", err)
		return nil
	}
	r.summary.ProfileWritten = true
	r.emit(StageProfilesWrite, "Wrote "+r.cfg.DataFile)
	return nil
}

func (r *runner) record(outcome profiles.MergeOutcome, doc types.BioDocument) {
	switch outcome {
	case profiles.MergeMatched:
		r.summary.BiosMerged++
	case profiles.MergeUnmatched:
		r.summary.BiosUnmatched++
		r.summary.UnmatchedHosts = append(r.summary.UnmatchedHosts, doc.Basics.Website)
	}
}

// FetchBios fetches every host's bio with at most limit requests in flight and
// waits for all of them. Results are in host order; a failed fetch yields an
// empty document and never cancels the others.
func FetchBios(ctx context.Context, fetcher *bio.Fetcher, hosts []string, limit int) []bio.Result {
	results := make([]bio.Result, len(hosts))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, host := range hosts {
		g.Go(func() error {
			results[i] = fetcher.FetchRemote(ctx, host)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *runner) runShowcase(ctx context.Context) {
	r.logger.Info("starting hall of frame update", "urls", r.cfg.ShowcaseURLFile)

	urls, err := showcase.LoadURLs(r.cfg.ShowcaseURLFile)
	if err != nil {
		r.logger.Warn("skipping hall of frame", "path", r.cfg.ShowcaseURLFile, "err", err)
		return
	}

	ordered := showcase.Order(urls)
	r.summary.ShowcaseURLs = len(ordered)
	if len(ordered) == 0 {
		r.logger.Info("no essay or project pages listed, hall of frame unchanged")
		return
	}

	scraper := showcase.NewScraper(showcase.Config{
		Client:       r.client,
		CardSelector: r.cfg.CardSelector,
		Concurrency:  r.cfg.Concurrency,
		Logger:       r.logger,
	})
	html, stats := scraper.Scrape(ctx, ordered)
	r.summary.ListingsFetched = stats.Listings
	r.summary.ListingsReused = stats.ListingHits
	r.summary.CardsWritten = stats.Cards
	r.summary.CardsMissed = stats.Missed
	r.summary.PagesFailed = stats.Failed

	r.summary.ShowcaseFile = r.cfg.ShowcaseOutputFile
	if err := showcase.Write(r.cfg.ShowcaseOutputFile, html); err != nil {
		r.logger.Error("failed to write hall of frame", "path", r.cfg.ShowcaseOutputFile, "err", err)
		return
	}
	r.summary.ShowcaseWritten = true
	r.logger.Info("wrote hall of frame", "path", r.cfg.ShowcaseOutputFile, "cards", stats.Cards)
	r.emit(StageShowcase, fmt.Sprintf("Wrote %d cards to %s", stats.Cards, r.cfg.ShowcaseOutputFile))
}
