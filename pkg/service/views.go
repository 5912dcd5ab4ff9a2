package service

import (
	"context"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/views"
)

// ViewsService keeps reporting views of a set of resources, the way an
// open page does while it stays open.
type ViewsService struct {
	rt *Runtime
}

// NewViewsService creates a new views service
func NewViewsService(rt *Runtime) *ViewsService {
	return &ViewsService{rt: rt}
}

// Watch reports every key once, then lets the reporter's retries run
// until ctx is cancelled. metricsAddr, when set, serves /metrics.
func (s *ViewsService) Watch(ctx context.Context, keys []string, metricsAddr string) error {
	store, closeStore := s.rt.OpenViewStore()
	defer closeStore()

	reporter := views.NewReporter(store, s.rt.API, views.Options{
		Cooldown: config.GetMillis("views.cooldown_ms"),
		Clock:    s.rt.Clock,
		Alerter:  s.rt.Notifier,
		Metrics:  s.rt.Metrics,
		OnSent: func(key string, stats *api.ViewStats) {
			output.PrintSuccess("%s  %s  views=%d", time.Now().Format(time.TimeOnly), key, stats.Views)
		},
	})
	defer reporter.Stop()

	if metricsAddr != "" && s.rt.Metrics != nil {
		go func() {
			if err := s.rt.Metrics.Serve(ctx, metricsAddr); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	for _, key := range keys {
		outcome, err := reporter.Report(ctx, key)
		switch outcome {
		case views.OutcomeSuppressed:
			output.PrintInfo("%s reported recently; retrying after the cool-down", key)
		case views.OutcomeFailed:
			output.PrintWarning("%s: %v; retrying after the cool-down", key, err)
		}
	}

	<-ctx.Done()
	return nil
}
