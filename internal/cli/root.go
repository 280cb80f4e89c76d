// Package cli implements the teamup command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagOffline   bool
	flagVerbose   bool
)

// current is the app wired by PersistentPreRunE for the running command.
var current *app

var rootCmd = &cobra.Command{
	Use:   "teamup",
	Short: "teamup manages sports events with offline-first storage",
	Long: `teamup stores events, participations, and profiles locally and keeps
them reconciled with a remote service. Mutations made while offline are
queued and replayed when the connection returns.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		v, err := loadConfig(resolveConfigDir())
		if err != nil {
			return err
		}
		current, err = newApp(resolveAppConfig(v))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		return current.close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: .teamup)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: .teamup-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "work offline even when a remote is configured")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}
