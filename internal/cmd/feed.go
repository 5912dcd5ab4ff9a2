package cmd

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var (
	feedAfter string
	feedPages int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List blogs, newest first",
	Long: `List blogs page by page, the way the home page loads them while
you scroll. Use --output rss to export the listing as an RSS feed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewFeedService(rt).Show(ctx, service.FeedOptions{
				After: feedAfter,
				Pages: feedPages,
			})
		})
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedAfter, "after", "", "Start after this blog ID")
	feedCmd.Flags().IntVar(&feedPages, "pages", 1, "Number of pages to load (0 loads everything)")
}
