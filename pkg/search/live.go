// Package search implements search-as-you-type: a minimum length gate,
// a debounce, and generation numbers so a slow answer never replaces a
// newer one.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/clock"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
)

const (
	DefaultMinLength = 3
	DefaultDebounce  = 200 * time.Millisecond
)

// NoResults is the placeholder shown for an empty answer
var NoResults = Link{Label: "No results found", Href: "#"}

// ErrStale is returned by Query when a newer query superseded it
var ErrStale = errors.New("search superseded by a newer query")

// Target is where a pointer interaction landed
type Target int

const (
	TargetOutside Target = iota
	TargetInput
	TargetResults
)

// Link is one rendered result
type Link struct {
	Label string
	Href  string
}

// Results is what the results box shows
type Results struct {
	Query   string
	Links   []Link
	Visible bool
}

// Searcher runs one query
type Searcher interface {
	Search(ctx context.Context, query string) ([]api.SearchResult, error)
}

// Options configures a LiveSearch
type Options struct {
	MinLength int
	Debounce  time.Duration
	Clock     clock.Clock
	// BaseURL prefixes result links
	BaseURL string
	Metrics *metrics.Metrics
	// OnChange is called with the new results after every change
	OnChange func(Results)
}

// LiveSearch holds the results box state
type LiveSearch struct {
	searcher Searcher
	opts     Options

	mu      sync.Mutex
	gen     uint64
	timer   clock.Timer
	cancel  context.CancelFunc
	results Results
}

// New creates a LiveSearch
func New(searcher Searcher, opts Options) *LiveSearch {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &LiveSearch{searcher: searcher, opts: opts}
}

// Input handles a change of the search box text. Short input clears the
// results at once; anything else is queried after the debounce.
func (s *LiveSearch) Input(ctx context.Context, text string) {
	s.mu.Lock()
	gen := s.supersede()
	if s.tooShort(text) {
		s.results = Results{Query: text}
		snapshot := s.results
		s.mu.Unlock()
		s.notify(snapshot)
		return
	}

	if s.opts.Debounce <= 0 {
		s.mu.Unlock()
		_, _ = s.run(ctx, text, gen)
		return
	}
	s.timer = s.opts.Clock.AfterFunc(s.opts.Debounce, func() {
		_, _ = s.run(ctx, text, gen)
	})
	s.mu.Unlock()
}

// Query runs text immediately, superseding anything pending.
func (s *LiveSearch) Query(ctx context.Context, text string) (Results, error) {
	s.mu.Lock()
	gen := s.supersede()
	if s.tooShort(text) {
		s.results = Results{Query: text}
		snapshot := s.results
		s.mu.Unlock()
		s.notify(snapshot)
		return snapshot, nil
	}
	s.mu.Unlock()
	return s.run(ctx, text, gen)
}

// Pointer handles a click or tap. Anywhere but the input or the results
// hides the results.
func (s *LiveSearch) Pointer(target Target) {
	if target != TargetOutside {
		return
	}
	s.mu.Lock()
	if !s.results.Visible {
		s.mu.Unlock()
		return
	}
	s.results.Visible = false
	snapshot := s.results
	s.mu.Unlock()
	s.notify(snapshot)
}

// Results returns the current results box
func (s *LiveSearch) Results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Close cancels pending and in-flight queries
func (s *LiveSearch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersede()
}

// supersede bumps the generation and drops older work. Callers hold s.mu.
func (s *LiveSearch) supersede() uint64 {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.gen
}

func (s *LiveSearch) tooShort(text string) bool {
	return utf8.RuneCountInString(text) < s.opts.MinLength
}

func (s *LiveSearch) run(ctx context.Context, text string, gen uint64) (Results, error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.opts.Metrics.SearchQuery("stale")
		return Results{}, ErrStale
	}
	qctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	found, err := s.searcher.Search(qctx, text)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		logger.Debug("Dropping stale search response", "query", text)
		s.opts.Metrics.SearchQuery("stale")
		return Results{}, ErrStale
	}
	s.cancel = nil

	switch {
	case errors.Is(err, clierrors.ErrNoMoreData) || (err == nil && len(found) == 0):
		s.results = Results{Query: text, Links: []Link{NoResults}, Visible: true}
		s.opts.Metrics.SearchQuery("empty")
	case err != nil:
		s.mu.Unlock()
		logger.Warn("Search failed", "query", text, "error", err)
		s.opts.Metrics.SearchQuery("failed")
		return Results{}, err
	default:
		links := make([]Link, len(found))
		for i, r := range found {
			links[i] = Link{Label: r.Title, Href: s.opts.BaseURL + api.BlogPath(r.Slug)}
		}
		s.results = Results{Query: text, Links: links, Visible: true}
		s.opts.Metrics.SearchQuery("results")
	}
	snapshot := s.results
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, nil
}

func (s *LiveSearch) notify(r Results) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(r)
	}
}
