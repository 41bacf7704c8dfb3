// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the CLI.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/paks/internal/configs"
)

// testKey is the hex key used by command tests.
const testKey = "0123456789abcdef0123456789abcdef"

// setupTestEnvironment points user settings at temporary directories, moves
// into tempDir and resets all command state. It returns tempDir.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserPaksSettings
	originalConfig := configs.GlobalUserConfig

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserPaksSettings = originalUserSettings
		configs.GlobalUserConfig = originalConfig
		ResetGlobalState()
	})

	configs.UserPaksSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
		Username:        "testuser",
	}
	t.Setenv("PAKS_KEY", "")
	ResetGlobalState()
	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
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

// withStdin runs fn with os.Stdin reading from content.
func withStdin(t *testing.T, content string, fn func() error) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
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
	return fn()
}

// runCLI executes the root command with args and returns its output.
func runCLI(args ...string) (string, error) {
	ResetGlobalState()
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return RootCmd.Execute()
	})
}

// runArchive runs a command against archive with the test key.
func runArchive(archive string, args ...string) (string, error) {
	return runCLI(append([]string{"--file", archive, "--key", testKey}, args...)...)
}

// assertContains fails the test if output lacks any of the wanted substrings.
func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, output)
		}
	}
}
