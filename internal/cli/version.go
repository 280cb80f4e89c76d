package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the teamup version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "teamup v%s\n", Version)
		return nil
	},
}
