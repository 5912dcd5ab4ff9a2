package cmd

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var (
	subscribeEmail string
	exportFile     string
	deleteForce    bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Account commands",
	Long:  "Manage newsletter subscriptions and your account",
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <user-id>",
	Short: "Subscribe to an author's new posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewProfileService(rt).Subscribe(ctx, args[0], subscribeEmail)
		})
	},
}

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <user-id>",
	Short: "Stop the newsletter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewProfileService(rt).Unsubscribe(ctx, args[0])
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <user-id>",
	Short: "Download an export of your account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewProfileService(rt).Export(ctx, args[0], exportFile)
		})
	},
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Permanently delete your account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewProfileService(rt).Delete(ctx, args[0], deleteForce)
			return err
		})
	},
}

func init() {
	subscribeCmd.Flags().StringVar(&subscribeEmail, "email", "", "Email address to send posts to")
	_ = subscribeCmd.MarkFlagRequired("email")
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Write the export to a file instead of stdout")
	deleteAccountCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip the confirmation prompt")

	profileCmd.AddCommand(subscribeCmd)
	profileCmd.AddCommand(unsubscribeCmd)
	profileCmd.AddCommand(exportCmd)
	profileCmd.AddCommand(deleteAccountCmd)
}
