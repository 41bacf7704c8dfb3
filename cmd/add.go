package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/utils"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var addCmd = &cobra.Command{
	Use:   "add PATH < CONTENT",
	Short: "Adds a file to the archive",
	Long: `Adds a file to the archive with its content read from stdin.

Missing parent directories are created. Anything already at PATH is
replaced; its old content stays in the archive until the next gc.

Examples:
  paks -f example.pak add a/b/example < example.txt
  echo hello | paks -f example.pak add greeting`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		data, err := utils.ReadStdin()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read stdin", err)
		}
		Logger.Debugf("Read %d bytes from stdin", len(data))

		spinner, cleanup := startSpinner("Adding file...")
		defer cleanup()

		result, err := workflows.Add(ctx, workflows.AddOptions{Target: target, Path: args[0], Data: data})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added " + ui.Path.Sprint(result.Path) +
			" " + ui.Muted.Sprint(ui.Bytes(uint64(result.Size)))
		return nil
	},
}
