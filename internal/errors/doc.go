// Package errors provides typed error values for paks.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Every layer,
// from the cipher engine up to the command line, reports failures through
// these values so the CLI can map them to distinct exit codes.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: malformed key material (ErrInvalidKey)
//   - Format errors: the bytes are not a plausible archive (ErrInvalidVersion,
//     ErrCorruptDirectory, ErrOutOfRange)
//   - Path errors: lookups and edits inside the archive (ErrNotFound,
//     ErrInvalidPath, ErrNotDirectory)
//   - Archive file errors: the archive on disk (ErrArchiveNotFound)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(key) != 16 {
//	    return nil, errors.ErrInvalidKey
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrInvalidVersion) {
//	    // Suggest checking the key
//	}
package errors
