// Package logger provides leveled logging for paks CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and colorized with fatih/color.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings are shown. User-facing results and
// errors are printed by the commands themselves.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown (critical warnings)
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the wrapped error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Adding %d files", count)
//
// Commands create a logger in the root command's PersistentPreRun.
package logger
