package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/utils"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var linkCmd = &cobra.Command{
	Use:   "link SRC DEST...",
	Short: "Links a file from alternative paths",
	Long: `Makes each DEST another name for the file at SRC.

The names share one copy of the content. Removing any of them leaves the
others intact.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting link command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Linking...")
		defer cleanup()

		result, err := workflows.Link(ctx, workflows.LinkOptions{Target: target, Src: args[0], Dsts: args[1:]})
		if err != nil {
			return fail(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Linked " + ui.Path.Sprint(result.Src) + " as:" +
			utils.FormatPaths(result.Linked)
		return nil
	},
}
