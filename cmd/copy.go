package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/utils"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var copyDryRun bool

func init() {
	copyCmd.Flags().BoolVar(&copyDryRun, "dry-run", false, "list what would be copied without changing the archive")
}

func resetCopyCommandState() {
	copyDryRun = false
}

var copyCmd = &cobra.Command{
	Use:   "copy DIR FILE...",
	Short: "Copies files into the archive",
	Long: `Copies host files into the archive directory DIR.

FILE may name a file, a directory (copied recursively under its own name)
or a glob pattern such as "configs/**/*.toml". Use "" or "." as DIR to copy
into the archive root.

Examples:
  paks -f example.pak copy backup notes.txt
  paks -f example.pak copy assets "images/*.png" sounds`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting copy command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		dir := args[0]
		if dir == "." {
			dir = ""
		}

		spinner, cleanup := startSpinner("Copying files...")
		defer cleanup()

		result, err := workflows.Copy(ctx, workflows.CopyOptions{
			Target:   target,
			Dir:      dir,
			Patterns: args[1:],
			DryRun:   copyDryRun,
		})
		if err != nil {
			return fail(spinner, err)
		}

		dests := make([]string, 0, len(result.Added))
		for _, c := range result.Added {
			Logger.Debugf("%s -> %s", c.Source, c.Dest)
			dests = append(dests, c.Dest)
		}

		if result.DryRun {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " Would copy:" + utils.FormatPaths(dests)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Copied " + ui.Bytes(uint64(result.Bytes)) + " into:" +
			utils.FormatPaths(dests)
		return nil
	},
}
