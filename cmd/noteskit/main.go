// Package main provides the noteskit binary entry point.
// Noteskit is a command line client for the notes service with
// persistent sessions and transparent token refresh.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notesapp/noteskit/internal/bootstrap"
)

const appVersion = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries the wired application across cobra commands. It is built in
// the root PersistentPreRunE so every subcommand sees the same graph.
type cli struct {
	app *bootstrap.App
}

func rootCmd() *cobra.Command {
	c := &cli{}

	var (
		modeFlag    string
		storageFlag string
	)

	cmd := &cobra.Command{
		Use:   "noteskit",
		Short: "Notes service client",
		Long: `Noteskit is a command line client for the notes service.

Sessions persist across invocations: tokens are stored in the configured
storage backend and expired access tokens are refreshed transparently
before requests are retried.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			if modeFlag != "" {
				if err := cfg.Auth.Mode.UnmarshalText([]byte(modeFlag)); err != nil {
					return err
				}
			}
			if storageFlag != "" {
				if err := cfg.Storage.Backend.UnmarshalText([]byte(storageFlag)); err != nil {
					return err
				}
				cfg.Storage.Sanitize()
			}

			logger := bootstrap.InitLogger(cfg.IsDev)
			app, err := bootstrap.BuildApp(bootstrap.BuildAppOptions{
				Config: cfg,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			c.app = app

			// Hydrate session state from stored tokens; an expired or
			// partial pair is cleared here, before any command runs.
			if initErr := app.Session.InitializeAuth(cmd.Context()); initErr != nil {
				logger.Warn("session hydration failed", "error", initErr)
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.app != nil {
				return c.app.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&modeFlag, "mode", "",
		"Repository mode override (http, mock)")
	cmd.PersistentFlags().StringVar(&storageFlag, "storage", "",
		"Token storage backend override (file, memory, redis)")

	cmd.AddCommand(
		loginCmd(c),
		logoutCmd(c),
		whoamiCmd(c),
		noteCmd(c),
		openCmd(c),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("noteskit version %s\n", appVersion)
		},
		// No app graph needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
}
