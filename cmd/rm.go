package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/utils"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var rmCmd = &cobra.Command{
	Use:   "rm PATH...",
	Short: "Removes paths from the archive",
	Long: `Removes files and directories from the archive.

The removed content is not erased until the next gc.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rm command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Removing...")
		defer cleanup()

		result, err := workflows.Remove(ctx, workflows.RemoveOptions{Target: target, Paths: args})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed:" + utils.FormatPaths(result.Removed) +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("paks gc") + " to reclaim the space"
		return nil
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv SRC DEST",
	Short: "Moves files in the archive",
	Long: `Renames a file or directory. Anything already at DEST is replaced.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting mv command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Moving...")
		defer cleanup()

		result, err := workflows.Move(ctx, workflows.MoveOptions{Target: target, Src: args[0], Dst: args[1]})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Moved " + ui.Path.Sprint(result.Src) + " to " + ui.Path.Sprint(result.Dst)
		return nil
	},
}
