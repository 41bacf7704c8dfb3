package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var gcDryRun bool

func init() {
	gcCmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "report reclaimable space without rewriting the archive")
}

func resetGCCommandState() {
	gcDryRun = false
}

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Collects garbage left behind by removed files",
	Long: `Rewrites the archive without the content no file refers to any more.

Content shared by linked files is kept once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting gc command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Collecting garbage...")
		defer cleanup()

		result, err := workflows.GC(ctx, workflows.GCOptions{Target: target, DryRun: gcDryRun})
		if err != nil {
			return fail(spinner, err)
		}
		Logger.Debugf("Data region %d -> %d bytes", result.Before, result.After)

		sizes := fmt.Sprintf("(%s -> %s)", ui.Bytes(result.Before), ui.Bytes(result.After))
		if result.DryRun {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + ui.Bytes(result.Reclaimed) + " can be reclaimed " + sizes
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Reclaimed " + ui.Bytes(result.Reclaimed) + " " + sizes
		return nil
	},
}
