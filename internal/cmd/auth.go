package cmd

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/service"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Check and manage your InkBloom session",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the session, re-authenticating silently if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewAuthService(rt).Status(ctx)
			return err
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Turn auto-login back on and print the sign-in URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			_, err := service.NewAuthService(rt).Login()
			return err
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and keep auto-login off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewAuthService(rt).Logout()
		})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session <cookie>",
	Short: "Store a session cookie copied from the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWith(cmd, func(ctx context.Context, rt *service.Runtime) error {
			return service.NewAuthService(rt).StoreSession(ctx, args[0])
		})
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(sessionCmd)
}
