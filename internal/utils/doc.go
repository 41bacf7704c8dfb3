// Package utils provides shared helpers for the paks CLI.
//
// # Host Files
//
//   - ResolveFiles: expands paths, doublestar globs and directories into
//     the host files the copy command adds
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # String Utilities
//
//   - FormatPaths: formats archive paths as a list
//   - JoinArchivePath: joins archive path components
//
// # I/O Utilities
//
//   - ReadStdin: reads file contents piped to the add command
//
// # Terminal Utilities
//
//   - ReadPassphrase: hidden passphrase prompt
//   - IsTerminal: checks whether stdout is a terminal
package utils
