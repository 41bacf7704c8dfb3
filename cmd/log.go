package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/audit"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logAll       bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().BoolVar(&logAll, "all", false, "show entries for every archive, not only --file")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by system user")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logAll = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of archive changes.

By default only entries for the archive named by --file are shown, or every
entry when no archive is named.

Examples:
  paks -f example.pak log                 # Changes to example.pak
  paks log --all -n 10                    # Last 10 entries overall
  paks log --all --operation add,rm       # Filter by operation
  paks log --all --since 2024-01-01       # Filter by date
  paks log --all --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		opts := workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			User:       logUser,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		}
		if !logAll {
			opts.Archive = archiveFile
		}

		spinner, cleanup := startSpinner("Loading audit log...")
		defer cleanup()

		result, err := workflows.Log(cmd.Context(), opts)
		if err != nil {
			if errors.Is(err, kerrors.ErrInvalidDateFormat) {
				return fail(spinner, err)
			}
			return fail(spinner, fmt.Errorf("failed to read audit log: %w", err))
		}
		Logger.Debugf("%d of %d entries match", len(result.Entries), result.Total)

		if len(result.Entries) == 0 {
			if result.Total == 0 {
				spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log entries found."
			} else {
				spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log entries found matching the filters."
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return fail(spinner, fmt.Errorf("failed to marshal entries to JSON: %w", err))
			}
			spinner.FinalMSG = string(data)
			return nil
		}

		spinner.FinalMSG = formatLogEntries(result.Entries)
		return nil
	},
}

func formatLogEntries(entries []audit.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-19s  %-12s  %-6s  %s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, e.Archive, workflows.FormatDetails(e))
	}
	return b.String()
}
