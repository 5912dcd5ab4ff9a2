// Package feed paginates the blog feed by cursor, never overlapping
// fetches and stopping for good once the server runs out of pages.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/Om-Mishra7/InkBloom/pkg/retry"
)

// Threshold is how far down the rendered content a reader must scroll
// before the next page loads.
type Threshold string

const (
	ThresholdHalf Threshold = "half"
	ThresholdFull Threshold = "full"
)

// ParseThreshold accepts "half" or "full"
func ParseThreshold(s string) (Threshold, error) {
	switch t := Threshold(strings.ToLower(strings.TrimSpace(s))); t {
	case ThresholdHalf, ThresholdFull:
		return t, nil
	default:
		return "", fmt.Errorf("unknown feed threshold %q (want half or full)", s)
	}
}

// Viewport is the reader's scroll position
type Viewport struct {
	ScrollY        float64
	Height         float64
	DocumentHeight float64
}

// Reached reports whether v is far enough down to load more
func (t Threshold) Reached(v Viewport) bool {
	bottom := v.Height + v.ScrollY
	if t == ThresholdFull {
		return bottom >= v.DocumentHeight
	}
	return bottom >= v.DocumentHeight/2
}

// Fetcher returns the page after a cursor
type Fetcher interface {
	BlogsAfter(ctx context.Context, lastID string) ([]api.Blog, error)
}

// Sink receives each loaded blog in server order
type Sink func(api.Blog)

// Options configures a Loader
type Options struct {
	Threshold Threshold
	Retry     retry.Policy
	Metrics   *metrics.Metrics
}

// Loader holds one feed cursor. It is safe for concurrent use; callers
// racing on LoadMore see at most one fetch in flight.
type Loader struct {
	fetcher Fetcher
	sink    Sink
	opts    Options

	mu        sync.Mutex
	cursor    string
	loading   bool
	exhausted bool
}

// NewLoader starts a feed after seed. An empty seed starts at the top.
func NewLoader(fetcher Fetcher, seed string, sink Sink, opts Options) *Loader {
	if opts.Threshold == "" {
		opts.Threshold = ThresholdHalf
	}
	if opts.Retry.MaxTries == 0 {
		opts.Retry = retry.DefaultPolicy
	}
	return &Loader{fetcher: fetcher, sink: sink, opts: opts, cursor: seed}
}

// OnScroll loads the next page once the threshold is reached
func (l *Loader) OnScroll(ctx context.Context, v Viewport) (int, error) {
	if !l.opts.Threshold.Reached(v) {
		return 0, nil
	}
	return l.LoadMore(ctx)
}

// LoadMore fetches and delivers the next page. It returns the number of
// items delivered; a call made while loading or after exhaustion does
// nothing.
func (l *Loader) LoadMore(ctx context.Context) (int, error) {
	l.mu.Lock()
	if l.loading || l.exhausted {
		l.mu.Unlock()
		l.opts.Metrics.FeedPage("skipped")
		return 0, nil
	}
	l.loading = true
	cursor := l.cursor
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	blogs, err := retry.Do(ctx, l.opts.Retry, "feed", func(ctx context.Context) ([]api.Blog, error) {
		return l.fetcher.BlogsAfter(ctx, cursor)
	})
	if errors.Is(err, clierrors.ErrNoMoreData) || (err == nil && len(blogs) == 0) {
		logger.Debug("Feed exhausted", "cursor", cursor)
		l.mu.Lock()
		l.exhausted = true
		l.mu.Unlock()
		l.opts.Metrics.FeedPage("exhausted")
		return 0, nil
	}
	if err != nil {
		logger.Error("Failed to load feed page", "cursor", cursor, "error", err)
		l.opts.Metrics.FeedPage("failed")
		return 0, err
	}

	for _, b := range blogs {
		if l.sink != nil {
			l.sink(b)
		}
	}

	l.mu.Lock()
	l.cursor = blogs[len(blogs)-1].ID
	l.mu.Unlock()

	logger.Debug("Feed page loaded", "count", len(blogs), "cursor", blogs[len(blogs)-1].ID)
	l.opts.Metrics.FeedPage("loaded")
	return len(blogs), nil
}

// Cursor is the ID of the last delivered item
func (l *Loader) Cursor() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Loading reports whether a fetch is in flight
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Exhausted reports whether the feed has no more pages
func (l *Loader) Exhausted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exhausted
}
