package errors

import "errors"

// Key errors indicate a problem with the caller supplied key material.
var (
	// ErrInvalidKey indicates the key is not exactly 128 bits.
	ErrInvalidKey = errors.New("invalid key: expected 128-bit key")

	// ErrInvalidPassphrase indicates an empty or unreadable passphrase.
	ErrInvalidPassphrase = errors.New("invalid passphrase")
)

// Format errors indicate the archive bytes are not a plausible archive for the given key.
var (
	// ErrInvalidVersion indicates the decrypted header carries an unsupported version.
	// There is no authentication tag, so this is also what a wrong key looks like.
	ErrInvalidVersion = errors.New("unsupported archive version (wrong key?)")

	// ErrCorruptDirectory indicates the directory framing is inconsistent.
	ErrCorruptDirectory = errors.New("corrupt directory")

	// ErrOutOfRange indicates a descriptor references bytes outside the data region.
	ErrOutOfRange = errors.New("file range outside of data region")
)

// Path errors indicate a problem resolving a path inside the archive.
var (
	// ErrNotFound indicates no entry exists at the path.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidPath indicates the path is empty or has an empty component.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotDirectory indicates a path component that must be a directory is a file.
	ErrNotDirectory = errors.New("path component is not a directory")

	// ErrNotFile indicates the entry at the path is a directory where a file was expected.
	ErrNotFile = errors.New("path is a directory")
)

// Editor errors indicate misuse of an editor.
var (
	// ErrFinished indicates the editor was already consumed by Finish.
	ErrFinished = errors.New("editor already finished")
)

// Archive file errors indicate issues with the archive on disk.
var (
	// ErrArchiveNotFound indicates the archive file does not exist.
	ErrArchiveNotFound = errors.New("archive not found")

	// ErrArchiveExists indicates the archive file already exists.
	ErrArchiveExists = errors.New("archive already exists")

	// ErrNoFilesFound indicates no host files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrNoKey indicates no key source was configured for the command.
	ErrNoKey = errors.New("no key provided")
)
