package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage paks configuration",
	Long: `Provides commands for managing the user configuration.

Examples:
  # Create the config with a fresh user ID and passphrase salt
  paks config init

  # Draw trees with ASCII art and read keys from $MY_KEY
  paks config init --art ascii --env MY_KEY

  # Show the current configuration
  paks config show`,
}
