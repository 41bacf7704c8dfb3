package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/internal/configs"
	"github.com/PolarWolf314/paks/internal/keys"
)

var (
	configInitArt     string
	configInitEnv     string
	configInitAudit   bool
	configInitNewSalt bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitArt, "art", "", "tree art style: ascii or unicode")
	configInitCmd.Flags().StringVar(&configInitEnv, "env", "", "environment variable holding the archive key")
	configInitCmd.Flags().BoolVar(&configInitAudit, "audit", true, "record archive changes in the audit log")
	configInitCmd.Flags().BoolVar(&configInitNewSalt, "new-salt", false, "replace the passphrase salt")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitArt = ""
	configInitEnv = ""
	configInitAudit = true
	configInitNewSalt = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize your user configuration",
	Long: `Creates or updates the user configuration file.

A user ID and a passphrase salt are generated on first run. Replacing the
salt with --new-salt changes every key derived with --passphrase, so
archives created that way must be rekeyed first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		userConfig, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize user config", err)
		}

		if configInitArt != "" {
			art := strings.ToLower(configInitArt)
			if art != "ascii" && art != "unicode" {
				return fmt.Errorf("invalid art style %q: expected ascii or unicode", configInitArt)
			}
			userConfig.Display.Art = art
		}
		if configInitEnv != "" {
			userConfig.Keys.Env = configInitEnv
		}
		if cmd.Flags().Changed("audit") {
			userConfig.Audit.Enabled = configInitAudit
		}
		if configInitNewSalt {
			salt, err := keys.NewSalt()
			if err != nil {
				return err
			}
			userConfig.Keys.Salt = hex.EncodeToString(salt)
			Logger.WarnfAlways("Passphrase salt replaced; keys derived from passphrases have changed")
		}

		if err := configs.SaveUserConfig(userConfig); err != nil {
			return Logger.ErrorfAndReturn("Failed to save user config", err)
		}
		configs.GlobalUserConfig = userConfig

		fmt.Println(color.GreenString("✓") + " User configuration saved to " + color.YellowString(configs.ConfigPath()))
		fmt.Println()
		printUserSettings(userConfig)
		return nil
	},
}

func printUserSettings(c *configs.UserConfig) {
	fmt.Printf("  %-14s %s\n", "User ID:", color.YellowString(c.User.UUID))
	fmt.Printf("  %-14s %s\n", "Tree art:", color.CyanString(c.Display.Art))
	fmt.Printf("  %-14s %s\n", "Key variable:", color.CyanString("$"+c.Keys.Env))
	fmt.Printf("  %-14s %s\n", "Argon2id:", fmt.Sprintf("%d KiB, %d passes, %d lanes", c.Keys.Memory, c.Keys.Iterations, c.Keys.Parallelism))
	fmt.Printf("  %-14s %t\n", "Audit log:", c.Audit.Enabled)
}
