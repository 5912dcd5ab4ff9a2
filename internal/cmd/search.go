package cmd

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search blogs by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewSearchService(rt).Once(ctx, strings.Join(args, " "))
			return err
		})
	},
}

var searchLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Search as you type",
	Long: `Search as you type. Results refresh once typing pauses; Escape
hides them, Enter or Ctrl-C quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewSearchService(rt).Live(ctx)
		})
	},
}

func init() {
	searchCmd.AddCommand(searchLiveCmd)
}
