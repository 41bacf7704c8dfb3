package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/configs"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the user configuration. Values missing from the file are shown
with their defaults.

Examples:
  paks config show
  paks config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(userConfig, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(color.CyanString("User Configuration") + " (" + configs.ConfigPath() + "):")
		fmt.Println()
		printUserSettings(userConfig)
		if userConfig.User.UUID == "" {
			fmt.Println()
			fmt.Println(color.CyanString("→") + " Run " + color.YellowString("paks config init") + " to create it")
		}
		return nil
	},
}
