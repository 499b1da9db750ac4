// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/sitesearch/internal/cache"
	"github.com/pdiddy/sitesearch/internal/debounce"
	"github.com/pdiddy/sitesearch/internal/logging"
	"github.com/pdiddy/sitesearch/internal/recent"
	"github.com/pdiddy/sitesearch/pkg/types"
)

// Observer receives engine events. internal/metrics provides a Prometheus
// implementation.
type Observer interface {
	Keystroke()
	Committed(results int)
	CacheLookup(hit bool)
	CacheEvicted()
}

type nopObserver struct{}

func (nopObserver) Keystroke()       {}
func (nopObserver) Committed(int)    {}
func (nopObserver) CacheLookup(bool) {}
func (nopObserver) CacheEvicted()    {}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Config types.SearchConfig

	// Clock drives the debounce timer. Nil uses the real clock.
	Clock debounce.Clock

	// Logger receives debug records. Nil discards.
	Logger *slog.Logger

	// Observer receives engine events. Nil ignores them.
	Observer Observer

	// SessionID labels log records. Empty generates a random UUID.
	SessionID string
}

// Engine is the search state owned by one UI session: the committed query
// and its results, a FIFO result cache, the recent-query list, and the
// debounce timer. Each Engine owns its cache; nothing is shared between
// instances.
//
// Methods are safe to call while a debounce timer fires on another
// goroutine.
type Engine struct {
	mu sync.Mutex

	id        string
	items     []types.ContentItem
	cfg       types.SearchConfig
	scorer    *Scorer
	cache     *cache.FIFO[string, Results]
	recent    *recent.Tracker
	debouncer *debounce.Debouncer
	logger    *slog.Logger
	observer  Observer

	committed    Query
	hasCommitted bool
	results      Results
}

// New returns an Engine over items. The collection is copied and never
// modified afterwards.
func New(items []types.ContentItem, opts Options) *Engine {
	cfg := opts.Config.WithDefaults()

	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Engine{
		id:        id,
		items:     cloneItems(items),
		cfg:       cfg,
		scorer:    NewScorer(cfg.Weights),
		cache:     cache.NewFIFO[string, Results](cfg.CacheCapacity),
		recent:    recent.NewTracker(cfg.RecentCapacity),
		debouncer: debounce.New(cfg.Debounce, opts.Clock),
		logger:    logger.With("session", id),
		observer:  observer,
		results:   Results{},
	}
}

// ID returns the session ID.
func (e *Engine) ID() string { return e.id }

// Config returns the effective configuration.
func (e *Engine) Config() types.SearchConfig { return e.cfg }

// Items returns a copy of the collection.
func (e *Engine) Items() []types.ContentItem {
	return cloneItems(e.items)
}

func cloneItems(items []types.ContentItem) []types.ContentItem {
	out := make([]types.ContentItem, len(items))
	for i, item := range items {
		item.Keywords = slices.Clone(item.Keywords)
		out[i] = item
	}
	return out
}

// SetQuery feeds one keystroke. It restarts the debounce interval; when the
// interval passes without another SetQuery, raw becomes the committed query.
// A keystroke always cancels the task scheduled by the previous one.
func (e *Engine) SetQuery(raw string) {
	e.observer.Keystroke()
	if e.debouncer.Trigger(func() { e.commit(raw) }) {
		e.logger.Debug("debounce restarted", "query", raw)
	}
}

// IsSearching reports whether a keystroke is waiting for the debounce
// interval to pass.
func (e *Engine) IsSearching() bool {
	return e.debouncer.Pending()
}

// Flush commits the pending keystroke immediately. It reports whether one
// was pending.
func (e *Engine) Flush() bool {
	return e.debouncer.Flush()
}

// Close cancels any pending keystroke.
func (e *Engine) Close() {
	e.debouncer.Stop()
}

// Results returns the results of the committed query, empty before the
// first commit.
func (e *Engine) Results() Results {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.results.clone()
}

// CommittedQuery returns the last committed query and whether any query
// has been committed.
func (e *Engine) CommittedQuery() (Query, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed, e.hasCommitted
}

// Search ranks raw immediately, bypassing the debounce timer. It shares the
// result cache with committed queries but leaves the committed query and
// its results unchanged.
func (e *Engine) Search(raw string) Results {
	q := Normalize(raw)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookupLocked(q).clone()
}

// Suggestions returns autocomplete entries for partially typed input: the
// recent queries when the input is blank, otherwise matching titles.
func (e *Engine) Suggestions(raw string) []string {
	q := Normalize(raw)
	if q.Text == "" {
		list := e.recent.List()
		if len(list) > e.cfg.SuggestionLimit {
			list = list[:e.cfg.SuggestionLimit]
		}
		return list
	}
	return SuggestTitles(e.items, q, e.cfg.SuggestionLimit)
}

// RecordQuery adds term to the recent-query list.
func (e *Engine) RecordQuery(term string) {
	e.recent.Record(term)
}

// ClearRecentQueries empties the recent-query list.
func (e *Engine) ClearRecentQueries() {
	e.recent.Clear()
}

// RecentQueries returns the recent queries, most recent first.
func (e *Engine) RecentQueries() []string {
	return e.recent.List()
}

// CachedQueries returns the cached query keys, oldest insertion first.
func (e *Engine) CachedQueries() []string {
	return e.cache.Keys()
}

// commit runs on the debounce timer with the debouncer's lock held.
func (e *Engine) commit(raw string) {
	q := Normalize(raw)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.hasCommitted && q.Text == e.committed.Text {
		e.committed = q
		return
	}

	e.committed = q
	e.hasCommitted = true
	e.results = e.lookupLocked(q)

	e.observer.Committed(len(e.results))
	e.logger.Debug("query committed", "query", q.Text, "results", len(e.results))
}

// lookupLocked returns the cached results for q, ranking and caching them on
// a miss. Empty queries bypass the cache.
func (e *Engine) lookupLocked(q Query) Results {
	if q.IsEmpty() {
		return Results{}
	}

	if cached, ok := e.cache.Get(q.Text); ok {
		e.observer.CacheLookup(true)
		e.logger.Debug("cache hit", "query", q.Text)
		return cached
	}
	e.observer.CacheLookup(false)

	results := e.scorer.Rank(e.items, q)
	if evicted, ok := e.cache.Put(q.Text, results); ok {
		e.observer.CacheEvicted()
		e.logger.Debug("cache evicted", "query", evicted)
	}
	e.logger.Debug("cache miss", "query", q.Text, "results", len(results))
	return results
}
