package cmd

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <blog-id> <text>",
	Short: "Comment on a blog",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewCommentService(rt).Add(ctx, args[0], strings.Join(args[1:], " "))
		})
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewCommentService(rt).Delete(ctx, args[0])
		})
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentDeleteCmd)
}
