// ABOUTME: Root Cobra command for the fde CLI.
// ABOUTME: Loads config, opens the logger and store, and dispatches --day/--month tokens.
package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fde/internal/config"
	"github.com/harperreed/fde/internal/logging"
	"github.com/harperreed/fde/internal/models"
	"github.com/harperreed/fde/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appCfg *config.Config
	repo   storage.Repository
	logger = zap.NewNop()

	// now is swapped in tests to pin the current month.
	now = time.Now

	dayFlag   string
	monthFlag string
)

// currentMonth is the --month value used when the flag has no date.
const currentMonth = "current"

var rootCmd = &cobra.Command{
	Use:   "fde [--day=DD/MM/YYYY] [--month[=DD/MM/YYYY]]",
	Short: "Daily revenue, hours and overtime tracker",
	Long: `fde tracks, per calendar day, the revenue earned, the hours worked and
the overtime hours, and reports monthly totals with the bonus they earn.

USAGE:

  $ fde                         # Welcome banner
  $ fde --month                 # Report for the current month
  $ fde -m=01/04/2023           # Report for April 2023
  $ fde --day=01/04/2023        # Show, save, modify or delete one day

  A --month date that cannot be parsed falls back to the current month.
  A --day date that cannot be parsed is reported and nothing is done.

BONUS:

  Delta is the month revenue minus 3421.15. When it is positive the bonus
  is 2% of the month revenue, otherwise it is 0.

DATA STORAGE:

  Records live in the SQLite file ./data/fildeclair.sq3 unless db_path is set
  in ~/.config/fde/config.json or FDE_DB_PATH is exported.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't touch the store
		switch cmd.Name() {
		case "version", "help", "install-skill":
			return nil
		}

		var err error
		appCfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(logging.Options{
			Path:  appCfg.GetLogPath(),
			Level: appCfg.GetLogLevel(),
		})
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		logger.Debug("command started", zap.String("command", cmd.Name()), zap.Strings("args", args))

		store, err := appCfg.OpenStorage(storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		repo = store
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		flags := cmd.Flags()

		if len(args) == 0 && !flags.Changed("day") && !flags.Changed("month") {
			showWelcome(out, appCfg.App)
			return nil
		}

		if flags.Changed("month") {
			runMonth(out, monthAnchor(monthFlag))
		}

		if flags.Changed("day") {
			day, err := models.ParseDay(dayFlag)
			if err != nil {
				renderError(out, "parse day", err)
			} else {
				runDay(cmd.InOrStdin(), out, day)
			}
		}

		for _, arg := range args {
			if filepath.Base(arg) == appCfg.App.Name {
				showWelcome(out, appCfg.App)
				continue
			}
			color.New(color.FgYellow).Fprintf(out, "unknown command %q, skipping\n", arg)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&dayFlag, "day", "d", "", "day to show, save, modify or delete (DD/MM/YYYY)")
	rootCmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month to report, any day of it (DD/MM/YYYY)")
	rootCmd.Flags().Lookup("month").NoOptDefVal = currentMonth
}

// monthAnchor parses a --month value, falling back to today.
func monthAnchor(value string) time.Time {
	if value != currentMonth {
		if day, err := models.ParseDay(value); err == nil {
			return day
		}
	}
	return now()
}

// showWelcome prints the application banner.
func showWelcome(w io.Writer, app config.App) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s tracks daily revenue, hours and overtime.\n", app.Name)
	fmt.Fprintf(w, "  %s v%s of %s\n", app.Author, app.Version, app.VersionDate)
	fmt.Fprintln(w)
}

// renderError is the single place a failed operation is shown to the user.
func renderError(w io.Writer, op string, err error) {
	logger.Error("operation failed", zap.String("op", op), zap.Error(err))
	color.New(color.FgRed).Fprintf(w, "Something went wrong in %s: %v\n", op, err)
}
