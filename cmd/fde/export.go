// ABOUTME: CLI commands for exporting and importing daily records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fde/internal/models"
	"github.com/harperreed/fde/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export daily records",
	Long: `Export daily records in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by month (human-readable)
  markdown   Markdown report per month with totals, delta and bonus

OPTIONS:

  --output, -o   Write to file instead of stdout
  --month        Only export the month containing this day (markdown only, DD/MM/YYYY)

EXAMPLES:

  fde export json                        # Export all records as JSON
  fde export json -o backup.json         # Save to file
  fde export yaml                        # Export as YAML
  fde export markdown --month 01/04/2023  # April 2023 as Markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			var anchor *time.Time
			if exportMonth != "" {
				day, err := models.ParseDay(exportMonth)
				if err != nil {
					return fmt.Errorf("invalid month: %w", err)
				}
				anchor = &day
			}
			md, err := storage.ExportMarkdown(repo, anchor)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import daily records from JSON",
	Long: `Import daily records from a JSON backup file.

Records are inserted one by one. A date that already exists stops the
import with a conflict error; records inserted before it are kept.

EXAMPLES:

  fde import backup.json               # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := storage.ImportJSON(repo, data)
		if err != nil {
			if summary != nil && summary.Records > 0 {
				color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "⚠ %d records imported before the failure\n", summary.Records)
			}
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d records from %s\n", summary.Records, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "only export the month containing this day (markdown only)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
