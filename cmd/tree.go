package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/configs"
	"github.com/PolarWolf314/paks/internal/directory"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var (
	treeASCII   bool
	treeUnicode bool
)

func init() {
	treeCmd.Flags().BoolVarP(&treeASCII, "ascii", "a", false, "draw using ASCII art")
	treeCmd.Flags().BoolVarP(&treeUnicode, "unicode", "u", false, "draw using Unicode art")
	treeCmd.MarkFlagsMutuallyExclusive("ascii", "unicode")
}

func resetTreeCommandState() {
	treeASCII = false
	treeUnicode = false
}

var treeCmd = &cobra.Command{
	Use:   "tree [PATH]",
	Short: "Displays the directory of the archive",
	Long: `Displays the directory of the archive, directories first.

PATH selects a subdirectory to start at. The default art style is taken
from display.art in the user config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tree command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		art := directory.ArtByName(configs.GlobalUserConfig.Display.Art)
		switch {
		case treeASCII:
			art = directory.ASCII
		case treeUnicode:
			art = directory.Unicode
		}

		opts := workflows.TreeOptions{Target: target, Art: art}
		if len(args) == 1 {
			opts.Root = args[0]
		}

		spinner, cleanup := startSpinner("Reading archive...")
		defer cleanup()

		result, err := workflows.Tree(ctx, opts)
		if err != nil {
			return fail(spinner, err)
		}
		Logger.Infof("Archive holds %d directories and %d files", result.Dirs, result.Files)

		spinner.FinalMSG = result.Output
		return nil
	},
}
