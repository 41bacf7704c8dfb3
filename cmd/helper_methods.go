package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/ui"
	"github.com/PolarWolf314/paks/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by the command that
// returned it.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// fail sets a failure message on the spinner and returns err marked as
// reported. Errors that occur before a spinner exists are returned as is and
// printed by main.
func fail(s *spinner.Spinner, err error) error {
	Logger.Errorf("%v", err)
	msg := ui.Error.Sprint("✗") + " " + err.Error()
	if hint := hintFor(err); hint != "" {
		msg += "\n" + ui.Info.Sprint("→") + " " + hint
	}
	s.FinalMSG = msg
	return &reportedError{err: err}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoKey):
		return "Run " + ui.Code.Sprint("paks keygen") + " to create a key"
	case errors.Is(err, kerrors.ErrInvalidVersion):
		return "Check the key, or that the file is a paks archive"
	case errors.Is(err, kerrors.ErrArchiveNotFound):
		return "Run " + ui.Code.Sprint("paks new") + " to create it"
	case errors.Is(err, kerrors.ErrArchiveExists):
		return "Pass " + ui.Flag.Sprint("--force") + " to replace it"
	case errors.Is(err, kerrors.ErrCorruptDirectory), errors.Is(err, kerrors.ErrOutOfRange):
		return "Run " + ui.Code.Sprint("paks fsck") + " for details"
	default:
		return ""
	}
}

// errNoArchive is returned when a command needs an archive and none was named.
var errNoArchive = errors.New("no archive given: pass --file or set $PAKS_FILE")

// archiveTarget resolves the archive path and key from the persistent flags.
func archiveTarget(ctx context.Context) (workflows.Target, error) {
	if archiveFile == "" {
		return workflows.Target{}, errNoArchive
	}
	Logger.Debugf("Archive: %s", archiveFile)

	key, err := resolveKey(ctx, archiveKey, usePassphrase, "Passphrase: ")
	if err != nil {
		return workflows.Target{}, err
	}
	return workflows.Target{Path: archiveFile, Key: key}, nil
}

func resolveKey(ctx context.Context, flag keyFlag, passphrase bool, prompt string) ([]byte, error) {
	res, err := workflows.ResolveKey(ctx, workflows.KeyOptions{
		Hex:        flag.hex,
		Passphrase: passphrase,
		Prompt:     prompt,
	})
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Using key from %s", res.Source)
	return res.Key, nil
}

// Exit codes returned by the paks binary.
const (
	ExitOK = iota
	ExitFailure
	ExitUsage
	ExitKey
	ExitCorrupt
	ExitPath
	ExitArchive
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errNoArchive):
		return ExitUsage
	case errors.Is(err, kerrors.ErrInvalidKey),
		errors.Is(err, kerrors.ErrInvalidPassphrase),
		errors.Is(err, kerrors.ErrNoKey),
		errors.Is(err, kerrors.ErrInvalidVersion):
		return ExitKey
	case errors.Is(err, kerrors.ErrCorruptDirectory),
		errors.Is(err, kerrors.ErrOutOfRange):
		return ExitCorrupt
	case errors.Is(err, kerrors.ErrNotFound),
		errors.Is(err, kerrors.ErrInvalidPath),
		errors.Is(err, kerrors.ErrNotDirectory),
		errors.Is(err, kerrors.ErrNotFile):
		return ExitPath
	case errors.Is(err, kerrors.ErrArchiveNotFound),
		errors.Is(err, kerrors.ErrArchiveExists),
		errors.Is(err, kerrors.ErrNoFilesFound):
		return ExitArchive
	default:
		return ExitFailure
	}
}
