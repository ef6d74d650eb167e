// Package cli defines Cobra command definitions for the shopverse CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/tui"
	"github.com/shopverse-dev/shopverse/internal/tui/app"
)

var (
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "shopverse",
	Short: "Terminal client for the Shopverse storefront",
	Long: `Shopverse is a terminal client for the Shopverse storefront API.
Browse the catalog, manage your basket, and check out against the
payment gateway without leaving the terminal.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		return tui.Run(app.New(env.cfg, env.client, env.sessions, env.baskets, env.logger))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Verbose returns true if --verbose flag is set.
func Verbose() bool {
	return verbose
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print request detail for troubleshooting")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyOtpCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(basketCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(activityCmd)
}
