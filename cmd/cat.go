package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/workflows"
)

var catCmd = &cobra.Command{
	Use:   "cat PATH...",
	Short: "Writes files from the archive to stdout",
	Long: `Decrypts the files at PATH and writes their contents to stdout, one
after the other.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting cat command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		result, err := workflows.Cat(ctx, workflows.CatOptions{Target: target, Paths: args, Out: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		Logger.Infof("Wrote %d bytes from %d files", result.Bytes, result.Files)
		return nil
	},
}
