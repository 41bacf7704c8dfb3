// Package workflows provides high-level orchestration for paks commands.
//
// Workflows coordinate the archive, store, keys, configs and audit packages
// to implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that parses flags, calls the
// workflow and formats the result. Workflows load configuration, read and
// write the archive file, perform the operation and record audit entries.
//
// Mutating workflows open the archive in an Editor, apply every requested
// change and only then seal and replace the file. A failure part way through
// leaves the archive on disk untouched.
//
// # Available Workflows
//
//   - New: creates an empty archive
//   - Tree: renders the directory
//   - Add, Copy: store data from stdin or host files
//   - Link, Remove, Move: edit the directory
//   - Cat: decrypts files
//   - GC: drops unreferenced payload bytes
//   - Fsck, Info: inspect an archive
//   - Rekey: re-encrypts an archive under a new key
//   - Log: reads the audit log
//   - ResolveKey, Keygen: obtain archive keys
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Cat(ctx, opts)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // Show a user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Long-running loops check it between files.
package workflows
