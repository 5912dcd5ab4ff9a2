package service

import (
	"context"
	"fmt"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/formatter"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/views"
)

// BlogService reads and writes blogs
type BlogService struct {
	rt *Runtime
}

// NewBlogService creates a new blog service
func NewBlogService(rt *Runtime) *BlogService {
	return &BlogService{rt: rt}
}

// View fetches a blog page and reports the view, honouring the
// cool-down recorded in the state database.
func (s *BlogService) View(ctx context.Context, slug string) (*api.BlogPage, views.Outcome, error) {
	page, err := s.rt.API.GetBlogPage(ctx, slug)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load blog %s: %w", slug, err)
	}

	store, closeStore := s.rt.OpenViewStore()
	defer closeStore()

	reporter := views.NewReporter(store, s.rt.API, views.Options{
		Cooldown: config.GetMillis("views.cooldown_ms"),
		Clock:    s.rt.Clock,
		Alerter:  s.rt.Notifier,
		Metrics:  s.rt.Metrics,
	})
	// a one-shot command has nothing left to retry for
	defer reporter.Stop()

	outcome, _ := reporter.Report(ctx, slug)

	formatter.Bold.Fprintln(output.Out, page.Title)
	if page.Summary != "" {
		fmt.Fprintln(output.Out, page.Summary)
	}
	fmt.Fprintln(output.Out, s.rt.BaseURL+api.BlogPath(slug))
	return page, outcome, nil
}

// Create submits a new blog
func (s *BlogService) Create(ctx context.Context, draft api.BlogDraft) (string, error) {
	slug, err := s.rt.API.CreateBlog(ctx, draft)
	if err := s.rt.surface(err, "Blog created"); err != nil {
		return "", err
	}
	output.PrintSuccess("Published at %s", s.rt.BaseURL+api.BlogPath(slug))
	return slug, nil
}

// Edit updates an existing blog
func (s *BlogService) Edit(ctx context.Context, id string, draft api.BlogDraft) (string, error) {
	slug, err := s.rt.API.UpdateBlog(ctx, id, draft)
	if err := s.rt.surface(err, "Blog updated"); err != nil {
		return "", err
	}
	output.PrintSuccess("Updated %s", s.rt.BaseURL+api.BlogPath(slug))
	return slug, nil
}
