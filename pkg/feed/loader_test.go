package feed

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/Om-Mishra7/InkBloom/pkg/retry"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retry.Policy{MaxTries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

// pagedFetcher serves pages keyed by cursor; unknown cursors are 404s.
type pagedFetcher struct {
	mu      sync.Mutex
	pages   map[string][]api.Blog
	cursors []string
	errs    []error
	gate    chan struct{}
}

func (f *pagedFetcher) BlogsAfter(ctx context.Context, lastID string) ([]api.Blog, error) {
	f.mu.Lock()
	f.cursors = append(f.cursors, lastID)
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	page, ok := f.pages[lastID]
	if !ok {
		return nil, fmt.Errorf("blogs after %q: %w", lastID, clierrors.ErrNoMoreData)
	}
	return page, nil
}

func (f *pagedFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cursors...)
}

func fakePage(ids ...string) []api.Blog {
	page := make([]api.Blog, len(ids))
	for i, id := range ids {
		page[i] = api.Blog{ID: id, Title: gofakeit.Word(), Author: gofakeit.Name()}
	}
	return page
}

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("[%d]", int(e)) }
func (e statusErr) HTTPStatus() int { return int(e) }

func TestThresholdReached(t *testing.T) {
	v := Viewport{ScrollY: 400, Height: 600, DocumentHeight: 2000}
	assert.True(t, ThresholdHalf.Reached(v))
	assert.False(t, ThresholdFull.Reached(v))

	v.ScrollY = 1400
	assert.True(t, ThresholdFull.Reached(v))

	v.ScrollY = 300
	assert.False(t, ThresholdHalf.Reached(v))
}

func TestParseThreshold(t *testing.T) {
	th, err := ParseThreshold(" Full ")
	require.NoError(t, err)
	assert.Equal(t, ThresholdFull, th)

	_, err = ParseThreshold("quarter")
	assert.Error(t, err)
}

func TestLoadMoreAppendsInServerOrder(t *testing.T) {
	fetcher := &pagedFetcher{pages: map[string][]api.Blog{
		"":  fakePage("3", "2", "1"),
		"1": fakePage("0"),
	}}
	var got []string
	l := NewLoader(fetcher, "", func(b api.Blog) { got = append(got, b.ID) }, Options{Retry: fastRetry})

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "1", l.Cursor())

	n, err = l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []string{"3", "2", "1", "0"}, got)
	assert.Equal(t, []string{"", "1"}, fetcher.calls())
	assert.False(t, l.Exhausted())
}

func TestNotFoundExhaustsForGood(t *testing.T) {
	fetcher := &pagedFetcher{pages: map[string][]api.Blog{}}
	m := metrics.New()
	l := NewLoader(fetcher, "42", nil, Options{Retry: fastRetry, Metrics: m})

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, l.Exhausted())

	n, err = l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	_, _ = l.OnScroll(context.Background(), Viewport{ScrollY: 1e6, Height: 1, DocumentHeight: 1})

	assert.Equal(t, []string{"42"}, fetcher.calls(), "no fetch after exhaustion")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedPagesTotal.WithLabelValues("exhausted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FeedPagesTotal.WithLabelValues("skipped")))
}

func TestEmptyPageExhausts(t *testing.T) {
	fetcher := &pagedFetcher{pages: map[string][]api.Blog{"": {}}}
	l := NewLoader(fetcher, "", nil, Options{Retry: fastRetry})

	_, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, l.Exhausted())
}

func TestNoOverlappingFetches(t *testing.T) {
	gate := make(chan struct{})
	fetcher := &pagedFetcher{pages: map[string][]api.Blog{"": fakePage("9")}, gate: gate}
	l := NewLoader(fetcher, "", nil, Options{Retry: fastRetry})

	done := make(chan int)
	go func() {
		n, _ := l.LoadMore(context.Background())
		done <- n
	}()

	require.Eventually(t, l.Loading, time.Second, time.Millisecond)
	for i := 0; i < 5; i++ {
		n, err := l.LoadMore(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	}

	close(gate)
	assert.Equal(t, 1, <-done)
	assert.Len(t, fetcher.calls(), 1)
	assert.False(t, l.Loading())
}

func TestServerErrorsAreRetried(t *testing.T) {
	fetcher := &pagedFetcher{
		pages: map[string][]api.Blog{"": fakePage("1")},
		errs:  []error{statusErr(502), statusErr(503)},
	}
	l := NewLoader(fetcher, "", nil, Options{Retry: fastRetry})

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, fetcher.calls(), 3)
}

func TestFailureRearmsTheLoader(t *testing.T) {
	fetcher := &pagedFetcher{
		pages: map[string][]api.Blog{"": fakePage("1")},
		errs:  []error{statusErr(500), statusErr(500), statusErr(500)},
	}
	l := NewLoader(fetcher, "", nil, Options{Retry: fastRetry})

	_, err := l.LoadMore(context.Background())
	require.Error(t, err)
	assert.False(t, l.Loading())
	assert.False(t, l.Exhausted())

	n, err := l.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	fetcher := &pagedFetcher{
		pages: map[string][]api.Blog{"": fakePage("1")},
		errs:  []error{statusErr(400)},
	}
	l := NewLoader(fetcher, "", nil, Options{Retry: fastRetry})

	_, err := l.LoadMore(context.Background())
	assert.Error(t, err)
	assert.Len(t, fetcher.calls(), 1)
}

func TestOnScrollBelowThresholdDoesNothing(t *testing.T) {
	fetcher := &pagedFetcher{pages: map[string][]api.Blog{"": fakePage("1")}}
	l := NewLoader(fetcher, "", nil, Options{Threshold: ThresholdFull, Retry: fastRetry})

	n, err := l.OnScroll(context.Background(), Viewport{ScrollY: 100, Height: 500, DocumentHeight: 1000})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, fetcher.calls())

	n, err = l.OnScroll(context.Background(), Viewport{ScrollY: 500, Height: 500, DocumentHeight: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
