package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/paks/internal/configs"
	logger "github.com/PolarWolf314/paks/internal/logging"
)

var (
	verbose       bool
	debug         bool
	archiveFile   string
	archiveKey    keyFlag
	usePassphrase bool
	Logger        logger.Logger

	RootCmd = &cobra.Command{
		Use:   "paks",
		Short: "paks - encrypted single-file archives",
		Long: `paks packs named files into one encrypted archive.

Files live in a directory tree inside the archive. Files can be added,
linked under additional names, moved, removed and read back. Removed data
stays in the archive until it is garbage collected.

The archive key is 128 bits written in hex. It is taken from --key, derived
from a passphrase with --passphrase, or read from the environment variable
named in the user config (PAKS_KEY by default).

Examples:
  paks keygen
  paks -f example.pak -k 0 new
  paks -f example.pak -k 0 add a/b/example < example.txt
  paks -f example.pak -k 0 link a/b/example aa/bb/example
  paks -f example.pak -k 0 tree -u
  paks -f example.pak -k 0 rm a/b/example
  paks -f example.pak -k 0 cat aa/bb/example`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing paks with verbose=%t, debug=%t", verbose, debug)

			userConfig, err := configs.LoadUserConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to load user config", err)
			}
			configs.GlobalUserConfig = userConfig
			Logger.Debugf("Loaded user config from %s", configs.ConfigPath())
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("paks", "alligator2", "green", true).Print()
			fmt.Println()
			fmt.Println("Run " + color.YellowString("paks --help") + " to see available commands.")
		},
	}
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.StringVarP(&archiveFile, "file", "f", os.Getenv("PAKS_FILE"), "archive file (default $PAKS_FILE)")
	flags.VarP(&archiveKey, "key", "k", "128-bit archive key in hex")
	flags.BoolVarP(&usePassphrase, "passphrase", "p", false, "derive the archive key from a passphrase")

	RootCmd.AddCommand(newCmd)
	RootCmd.AddCommand(treeCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(copyCmd)
	RootCmd.AddCommand(linkCmd)
	RootCmd.AddCommand(catCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(mvCmd)
	RootCmd.AddCommand(gcCmd)
	RootCmd.AddCommand(fsckCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(rekeyCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	archiveFile = ""
	archiveKey = keyFlag{}
	usePassphrase = false
	resetTreeCommandState()
	resetNewCommandState()
	resetCopyCommandState()
	resetGCCommandState()
	resetFsckCommandState()
	resetInfoCommandState()
	resetRekeyCommandState()
	resetLogCommandState()
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marks left on every flag by a previous run.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
