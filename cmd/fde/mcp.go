// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server exposing day and month operations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fde/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Diagnostics go to the log file only.

CONFIGURATION:

  {
    "mcpServers": {
      "fde": { "command": "fde", "args": ["mcp"] }
    }
  }

AVAILABLE TOOLS:

  get_day      Get one day, creating an empty record if missing
  save_day     Save revenue, hours, overtime and comment for one day
  delete_day   Delete one day
  get_month    Totals, delta, bonus and records for a month

AVAILABLE RESOURCES:

  fde://month/current   Report for the current month`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, appCfg.App.Version, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
