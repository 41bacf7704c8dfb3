// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running paks commands.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/paks/cmd"
	"github.com/PolarWolf314/paks/internal/configs"
	logger "github.com/PolarWolf314/paks/internal/logging"
)

// TestKey is the hex archive key used by integration tests.
const TestKey = "2b7e151628aed2a6abf7158809cf4f3c"

// SetupTestEnvironment moves into tempDir and points user settings at
// tempUserDir. Everything is restored when the test ends.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	t.Helper()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserPaksSettings = originalUserSettings
		configs.GlobalUserConfig = nil
		cmd.ResetGlobalState()
	})

	configs.UserPaksSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
		Username:        "testuser",
	}
	t.Setenv("PAKS_KEY", "")
	t.Setenv("PAKS_FILE", "")
}

// NewTestEnvironment creates temporary work and user directories and sets
// them up. It returns the work directory.
func NewTestEnvironment(t *testing.T) string {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}
	tempDir := t.TempDir()
	SetupTestEnvironment(t, tempDir, t.TempDir(), originalWd, configs.UserPaksSettings)
	return tempDir
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI prepares the root command to run args with the given
// verbosity.
func CreateTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()
	cmd.SetLogger(logger.Logger{Verbose: verboseFlag, Debug: debugFlag})

	root := cmd.GetRootCmd()
	if verboseFlag {
		args = append([]string{"--verbose"}, args...)
	}
	if debugFlag {
		args = append([]string{"--debug"}, args...)
	}
	root.SetArgs(args)
	return root
}

// Run executes a paks command line and returns its combined output.
func Run(args ...string) (string, error) {
	return CaptureOutput(func() error {
		return CreateTestCLI(args, false, false).Execute()
	})
}

// RunArchive runs a command against archive with TestKey.
func RunArchive(archive string, args ...string) (string, error) {
	return Run(append([]string{"--file", archive, "--key", TestKey}, args...)...)
}

// RunWithStdin runs a command with content on stdin.
func RunWithStdin(t *testing.T, content []byte, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Failed to write stdin file: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open stdin file: %v", err)
	}
	defer f.Close()

	original := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = original }()
	return Run(args...)
}

// CreateArchive runs `paks new` for archive and fails the test on error.
func CreateArchive(t *testing.T, archive string) {
	t.Helper()
	if output, err := RunArchive(archive, "new"); err != nil {
		t.Fatalf("Failed to create archive: %v\n%s", err, output)
	}
}

// AddFile stores content at path inside archive.
func AddFile(t *testing.T, archive, path string, content []byte) {
	t.Helper()
	output, err := RunWithStdin(t, content, "--file", archive, "--key", TestKey, "add", path)
	if err != nil {
		t.Fatalf("Failed to add %s: %v\n%s", path, err, output)
	}
}

// AssertContains fails the test if output lacks any of the wanted substrings.
func AssertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, output)
		}
	}
}
