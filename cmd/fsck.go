package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var fsckDecrypt bool

func init() {
	fsckCmd.Flags().BoolVar(&fsckDecrypt, "decrypt", false, "also decrypt every file")
}

func resetFsckCommandState() {
	fsckDecrypt = false
}

var fsckCmd = &cobra.Command{
	Use:   "fsck",
	Short: "File system consistency check",
	Long: `Decodes the archive and checks that every file lies inside the data region.

The archive carries no checksums, so content changes cannot be detected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting fsck command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Checking archive...")
		defer cleanup()

		result, err := workflows.Fsck(ctx, workflows.FsckOptions{Target: target, Decrypt: fsckDecrypt})
		if err != nil {
			return fail(spinner, err)
		}

		summary := fmt.Sprintf("%d directories, %d files", result.Dirs, result.Files)
		if result.OK() {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " No problems found " + ui.Muted.Sprint(summary)
			return nil
		}

		var b strings.Builder
		b.WriteString(ui.Error.Sprint("✗") + fmt.Sprintf(" %d problems found ", len(result.Problems)) + ui.Muted.Sprint(summary) + "\n")
		for _, p := range result.Problems {
			b.WriteString("    - " + ui.Entry.Sprint(p.Path.String()) + ": " + p.Message + "\n")
		}
		spinner.FinalMSG = b.String()
		return &reportedError{err: fmt.Errorf("%w: %d problems", kerrors.ErrOutOfRange, len(result.Problems))}
	},
}
