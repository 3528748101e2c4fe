// ABOUTME: Version command.
// ABOUTME: Prints the application identity without opening the store.
package main

import (
	"fmt"

	"github.com/harperreed/fde/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := config.DefaultApp()
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s (%s)\n", app.Name, app.Version, app.VersionDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
