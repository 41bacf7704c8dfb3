package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/workflows"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generates a random archive key",
	Long: `Prints a random 128-bit key in hex, ready for --key or $PAKS_KEY.

Example:
  export PAKS_KEY=$(paks keygen)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Keygen(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Hex)
		return nil
	},
}
