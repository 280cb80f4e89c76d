// Sync, queue, status, and export subcommands.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Control the sync engine",
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Run one sync pass immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := current.engine.SyncNow(cmd.Context())
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "synced %d, retried %d, abandoned %d, %d remaining\n",
			result.Synced, result.Retried, result.Abandoned, result.Remaining)
		return nil
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the pending-mutation queue",
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued mutations in replay order",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.store.Queue().List()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, items)
		}
		for _, item := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  attempts=%d  %s\n",
				item.ID, item.Action, item.Attempts,
				time.UnixMilli(item.Timestamp).UTC().Format(time.RFC3339))
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and pending-sync state",
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, err := current.engine.PendingCount()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, map[string]any{
				"online":  current.signal.IsOnline(),
				"pending": pending,
			})
		}
		state := "offline"
		if current.signal.IsOnline() {
			state = "online"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s, %d pending mutations\n", state, pending)
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all local data, including unsynced changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to erase local data without --yes")
		}
		if err := current.store.ClearAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "local store cleared")
		return nil
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the local store as JSONL files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.store.ExportSnapshot(exportOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", exportOut)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncNowCmd)
	queueCmd.AddCommand(queueListCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "teamup-export", "output directory")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the erase")
}
