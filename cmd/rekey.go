package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

var (
	rekeyNewKey        keyFlag
	rekeyNewPassphrase bool
)

func init() {
	rekeyCmd.Flags().Var(&rekeyNewKey, "new-key", "new 128-bit archive key in hex")
	rekeyCmd.Flags().BoolVar(&rekeyNewPassphrase, "new-passphrase", false, "derive the new key from a passphrase")
	rekeyCmd.MarkFlagsMutuallyExclusive("new-key", "new-passphrase")
}

func resetRekeyCommandState() {
	rekeyNewKey = keyFlag{}
	rekeyNewPassphrase = false
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypts the archive under a new key",
	Long: `Re-encrypts every file under a new key. Garbage is dropped on the way.

Without --new-key or --new-passphrase a random key is generated and printed.
Store it before the old key is discarded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rekey command")
		ctx := cmd.Context()

		target, err := archiveTarget(ctx)
		if err != nil {
			return err
		}

		var newKey []byte
		generated := ""
		if rekeyNewKey.IsSet() || rekeyNewPassphrase {
			if newKey, err = resolveKey(ctx, rekeyNewKey, rekeyNewPassphrase, "New passphrase: "); err != nil {
				return err
			}
		} else {
			key, err := workflows.Keygen(ctx)
			if err != nil {
				return err
			}
			newKey, generated = key.Key, key.Hex
		}

		spinner, cleanup := startSpinner("Re-encrypting archive...")
		defer cleanup()

		result, err := workflows.Rekey(ctx, workflows.RekeyOptions{Target: target, NewKey: newKey})
		if err != nil {
			return fail(spinner, err)
		}

		msg := ui.Success.Sprint("✓") + " Re-encrypted " + ui.Path.Sprint(target.Path) + " " +
			ui.Muted.Sprintf("%d files, %s", result.Files, ui.Bytes(result.DataSize))
		if generated != "" {
			msg += "\n" + ui.Warning.Sprint("⚠") + " New key: " + ui.Highlight.Sprint(generated)
		}
		spinner.FinalMSG = msg
		return nil
	},
}
