package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var newForce bool

func init() {
	newCmd.Flags().BoolVar(&newForce, "force", false, "replace an existing archive")
}

func resetNewCommandState() {
	newForce = false
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Creates a new empty archive",
	Long: `Creates a new empty archive with the given file name and key.

An existing file is only replaced when --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting new command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Creating archive...")
		defer cleanup()

		result, err := workflows.New(ctx, workflows.NewOptions{Target: target, Force: newForce})
		if err != nil {
			return fail(spinner, err)
		}
		Logger.Infof("Created %s (%d bytes)", result.Path, result.Size)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created empty archive " + ui.Path.Sprint(result.Path)
		return nil
	},
}
