package cmd

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <text>",
	Short: "Send feedback to the site owners",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewFeedbackService(rt).Send(ctx, strings.Join(args, " "))
		})
	},
}
