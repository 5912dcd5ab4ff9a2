package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Om-Mishra7/InkBloom/pkg/client"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "inkbloom",
	Short: "InkBloom CLI - Read and write on an InkBloom blog",
	Long: `InkBloom CLI is a command-line client for an InkBloom blog.
Browse the feed, search, read and publish blogs, and manage your
account directly from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(verbose)

		if cmd.Flags().Changed("output") {
			if !output.ValidateOutputFormat(outputFmt) {
				return fmt.Errorf("invalid output format %q (text, json, table, rss)", outputFmt)
			}
			config.Override("output.format", outputFmt)
		}

		client.Init()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		os.Exit(1)
	}
}

// runWith builds the runtime from configuration and hands it to fn.
// Long-running commands stop on SIGINT or SIGTERM through ctx.
func runWith(cmd *cobra.Command, fn func(ctx context.Context, rt *service.Runtime) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := service.NewRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(ctx, rt)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/inkbloom/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table, rss")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(blogCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
