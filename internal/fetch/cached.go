package fetch

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Getter is implemented by Client and CachedFetcher.
type Getter interface {
	Get(ctx context.Context, urlStr string) (*Result, error)
}

// CachedFetcher memoizes GET responses for its lifetime. Several showcase pages
// usually share one listing page, so each listing is requested once per run.
// Concurrent requests for the same URL wait on a single fetch. Failures are
// cached too: every URL gets exactly one attempt.
type CachedFetcher struct {
	client Getter
	group  singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
	calls   int
}

type cacheEntry struct {
	result *Result
	err    error
}

// NewCachedFetcher wraps client; a nil client uses NewClient(nil).
func NewCachedFetcher(client Getter) *CachedFetcher {
	if client == nil {
		client = NewClient(nil)
	}
	return &CachedFetcher{
		client:  client,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached response for urlStr, fetching it on first use.
func (f *CachedFetcher) Get(ctx context.Context, urlStr string) (*Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if entry, ok := f.lookup(urlStr); ok {
		return entry.result, entry.err
	}

	v, _, _ := f.group.Do(urlStr, func() (any, error) {
		if entry, ok := f.lookup(urlStr); ok {
			return entry, nil
		}
		result, err := f.client.Get(ctx, urlStr)
		entry := cacheEntry{result: result, err: err}

		f.mu.Lock()
		f.entries[urlStr] = entry
		f.mu.Unlock()
		return entry, nil
	})

	entry := v.(cacheEntry)
	return entry.result, entry.err
}

func (f *CachedFetcher) lookup(urlStr string) (cacheEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[urlStr]
	return entry, ok
}

// Len returns the number of distinct URLs fetched.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Hits returns how many Get calls did not issue a request of their own, either
// because the URL was cached or because they joined an in-flight fetch.
func (f *CachedFetcher) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls - len(f.entries)
}
