package service

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/feed"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/retry"
)

// FeedService pages through the blog feed
type FeedService struct {
	rt *Runtime
}

// NewFeedService creates a new feed service
func NewFeedService(rt *Runtime) *FeedService {
	return &FeedService{rt: rt}
}

// FeedOptions controls a feed listing
type FeedOptions struct {
	After string
	// Pages is the number of pages to load; 0 loads until exhausted
	Pages int
}

// Load returns blogs page by page after opts.After
func (s *FeedService) Load(ctx context.Context, opts FeedOptions) ([]api.Blog, error) {
	threshold, err := feed.ParseThreshold(config.GetString("feed.threshold"))
	if err != nil {
		return nil, err
	}
	policy := retry.DefaultPolicy
	if n := config.GetInt("feed.retry_max_tries"); n > 0 {
		policy.MaxTries = uint(n)
	}

	var blogs []api.Blog
	loader := feed.NewLoader(s.rt.API, opts.After, func(b api.Blog) {
		blogs = append(blogs, b)
	}, feed.Options{Threshold: threshold, Retry: policy, Metrics: s.rt.Metrics})

	for page := 0; opts.Pages <= 0 || page < opts.Pages; page++ {
		if _, err := loader.LoadMore(ctx); err != nil {
			if len(blogs) > 0 {
				output.PrintWarning("Stopped early: %v", err)
				break
			}
			return nil, err
		}
		if loader.Exhausted() {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return blogs, nil
}

// Show loads and prints the feed
func (s *FeedService) Show(ctx context.Context, opts FeedOptions) error {
	blogs, err := s.Load(ctx, opts)
	if err != nil {
		return err
	}
	if len(blogs) == 0 && output.GetOutputFormat() == output.FormatText {
		output.PrintInfo("No blogs to show")
		return nil
	}
	return output.PrintBlogs("InkBloom", s.rt.BaseURL, blogs)
}
