// ABOUTME: Month report command and rendering.
// ABOUTME: Prints totals, delta, bonus and one line per recorded day.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fde/internal/models"
	"github.com/harperreed/fde/internal/storage"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [DD/MM/YYYY]",
	Short: "Show the report for a month",
	Long: `Show revenue, hours and overtime totals for the month containing the
given day, the delta against the 3421.15 threshold, the bonus, and every
recorded day.

EXAMPLES:

  fde month               # Current month
  fde month 15/04/2023    # April 2023`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := currentMonth
		if len(args) == 1 {
			value = args[0]
		}
		runMonth(cmd.OutOrStdout(), monthAnchor(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

// runMonth builds and renders the month containing anchor.
func runMonth(w io.Writer, anchor time.Time) {
	m, err := storage.BuildMonth(repo, anchor)
	if err != nil {
		renderError(w, "build month", err)
		return
	}
	renderMonth(w, m)
}

func renderMonth(w io.Writer, m *models.Month) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "--- Values for month %s ---\n", m.Label())
	fmt.Fprintf(w, "\tRevenue\t = %8.2f\n", m.Revenue)
	fmt.Fprintf(w, "\tHours\t = %8s\n", models.FormatNumber(m.Hours))
	fmt.Fprintf(w, "\tOvertime = %8s\n", models.FormatNumber(m.Overtime))

	delta := color.New(color.FgYellow)
	if m.Delta() > 0 {
		delta = color.New(color.FgGreen)
	}
	delta.Fprintf(w, "\tDelta\t = %8.2f\n", m.Delta())
	fmt.Fprintf(w, "\tBonus\t = %8.2f\n", m.Bonus())

	bold.Fprintln(w, "--- Days ---------------------------")
	if len(m.Records) == 0 {
		faint.Fprintln(w, "\tno records")
		return
	}
	for _, r := range m.Records {
		fmt.Fprintf(w, "\t%s : %6s / %4s (%s)",
			r.Date,
			models.FormatNumber(r.Revenue),
			models.FormatNumber(r.Hours),
			models.FormatNumber(r.Overtime))
		if r.Comment != nil {
			faint.Fprintf(w, " => %q", *r.Comment)
		}
		fmt.Fprintln(w)
	}
}
