// Package views reports page views at most once per resource per
// cool-down window.
//
// The record is written before the server confirms the increment. A
// request that then fails leaves the window closed, so that view is not
// counted; the retry fires when the window ends.
package views

import (
	"context"
	"sync"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/clock"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/Om-Mishra7/InkBloom/pkg/notifier"
)

// DefaultCooldown is the minimum time between two reports of a resource
const DefaultCooldown = 60 * time.Second

// Outcome of one Report call
type Outcome string

const (
	OutcomeSent       Outcome = "sent"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeFailed     Outcome = "failed"
)

// Sender issues the increment request
type Sender interface {
	ReportView(ctx context.Context, key string) (*api.ViewStats, error)
}

// Options configures a Reporter
type Options struct {
	Cooldown time.Duration
	Clock    clock.Clock
	Alerter  notifier.Alerter
	Metrics  *metrics.Metrics
	// OnSent is called after each confirmed report
	OnSent func(key string, stats *api.ViewStats)
}

// Reporter deduplicates view reports. Retries run on the Clock with the
// reporter's own context, which Stop cancels.
type Reporter struct {
	store  Store
	sender Sender
	opts   Options

	ctx    context.Context
	cancel context.CancelFunc

	// gate makes the cool-down check and the record write one step
	gate sync.Mutex

	mu      sync.Mutex
	pending map[string]clock.Timer
}

// NewReporter creates a Reporter
func NewReporter(store Store, sender Sender, opts Options) *Reporter {
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Reporter{
		store:   store,
		sender:  sender,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]clock.Timer),
	}
}

// Report sends a view for key unless one was sent within the cool-down.
// A suppressed or failed report schedules a retry for when the window
// ends.
func (r *Reporter) Report(ctx context.Context, key string) (Outcome, error) {
	r.gate.Lock()
	now := r.opts.Clock.Now()

	rec, found, err := r.store.Get(ctx, key)
	if err != nil {
		logger.Warn("Could not read view record", "key", key, "error", err)
	}
	if found && now.Sub(rec.LastReportedAt) < r.opts.Cooldown {
		r.gate.Unlock()
		logger.Debug("View report suppressed", "key", key, "last", rec.LastReportedAt)
		r.opts.Metrics.ViewReport(string(OutcomeSuppressed))
		r.scheduleRetry(key, rec.LastReportedAt.Add(r.opts.Cooldown).Sub(now))
		return OutcomeSuppressed, nil
	}

	r.cancelRetry(key)
	if err := r.store.Put(ctx, Record{ResourceKey: key, LastReportedAt: now}); err != nil {
		logger.Warn("Could not write view record", "key", key, "error", err)
	}
	r.gate.Unlock()

	stats, err := r.sender.ReportView(ctx, key)
	if err != nil {
		logger.Warn("View report failed", "key", key, "error", err)
		r.opts.Metrics.ViewReport(string(OutcomeFailed))
		if r.opts.Alerter != nil {
			r.opts.Alerter.Show(notifier.KindDanger, "Could not record your view")
		}
		r.scheduleRetry(key, r.opts.Cooldown)
		return OutcomeFailed, err
	}

	logger.Debug("View reported", "key", key)
	r.opts.Metrics.ViewReport(string(OutcomeSent))
	if r.opts.OnSent != nil {
		r.opts.OnSent(key, stats)
	}
	return OutcomeSent, nil
}

// Pending reports whether a retry is scheduled for key
func (r *Reporter) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[key]
	return ok
}

// Stop cancels every pending retry and any retry in flight
func (r *Reporter) Stop() {
	r.cancel()
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, t := range r.pending {
		t.Stop()
		delete(r.pending, key)
	}
}

// scheduleRetry replaces any pending retry for key with one after delay
func (r *Reporter) scheduleRetry(key string, delay time.Duration) {
	if r.ctx.Err() != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.pending[key]; ok {
		old.Stop()
	}

	var t clock.Timer
	t = r.opts.Clock.AfterFunc(delay, func() {
		r.mu.Lock()
		if r.pending[key] != t {
			r.mu.Unlock()
			return
		}
		delete(r.pending, key)
		r.mu.Unlock()

		if r.ctx.Err() != nil {
			return
		}
		_, _ = r.Report(r.ctx, key)
	})
	r.pending[key] = t
}

func (r *Reporter) cancelRetry(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.pending[key]; ok {
		t.Stop()
		delete(r.pending, key)
	}
}
