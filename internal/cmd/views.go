package cmd

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var metricsAddr string

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "View statistics commands",
}

var viewsWatchCmd = &cobra.Command{
	Use:   "watch <key>...",
	Short: "Keep reporting views of resources until interrupted",
	Long: `Report a view of every key, then keep retrying suppressed or
failed reports once the cool-down ends, like a page left open.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := metricsAddr
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			if addr == "" {
				addr = config.GetString("metrics.addr")
			}
			return service.NewViewsService(rt).Watch(ctx, args, addr)
		})
	},
}

func init() {
	viewsWatchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	viewsCmd.AddCommand(viewsWatchCmd)
}
