package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output in JSON format")
}

func resetInfoCommandState() {
	infoJSON = false
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Shows sizes, counts and the digest of the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Reading archive...")
		defer cleanup()

		result, err := workflows.Info(ctx, workflows.InfoOptions{Target: target})
		if err != nil {
			return fail(spinner, err)
		}

		if infoJSON {
			out, err := json.MarshalIndent(infoJSONView(result), "", "  ")
			if err != nil {
				return fail(spinner, fmt.Errorf("failed to marshal info to JSON: %w", err))
			}
			spinner.FinalMSG = string(out)
			return nil
		}

		var b strings.Builder
		row := func(label, value string) {
			fmt.Fprintf(&b, "  %-14s %s\n", label+":", value)
		}
		b.WriteString(ui.Info.Sprint("Archive") + " " + ui.Path.Sprint(result.Path) + "\n\n")
		row("Size", ui.Bytes(uint64(result.Size)))
		row("Digest", result.Digest.String())
		row("Directories", fmt.Sprint(result.Stats.Dirs))
		row("Files", fmt.Sprintf("%d (%d unique)", result.Stats.Files, result.Stats.Unique))
		row("Data", ui.Bytes(result.Stats.DataSize))
		row("Live", ui.Bytes(result.Stats.Live))
		row("Garbage", ui.Bytes(result.Stats.Garbage()))
		row("Directory", fmt.Sprintf("%s at block %d", ui.Bytes(uint64(result.Header.DirSize)), result.Header.DirOffset))
		spinner.FinalMSG = b.String()
		return nil
	},
}

func infoJSONView(r *workflows.InfoResult) map[string]any {
	return map[string]any{
		"path":       r.Path,
		"size":       r.Size,
		"digest":     r.Digest.String(),
		"dirs":       r.Stats.Dirs,
		"files":      r.Stats.Files,
		"unique":     r.Stats.Unique,
		"data_size":  r.Stats.DataSize,
		"live":       r.Stats.Live,
		"garbage":    r.Stats.Garbage(),
		"dir_offset": r.Header.DirOffset,
		"dir_size":   r.Header.DirSize,
	}
}
