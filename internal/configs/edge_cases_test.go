package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestEdgeCases contains edge case tests for the config system.
func TestEdgeCases(t *testing.T) {
	t.Run("PartialConfigKeepsDefaults", func(t *testing.T) {
		testPartialConfigKeepsDefaults(t)
	})

	t.Run("MalformedConfig", func(t *testing.T) {
		testMalformedConfig(t)
	})

	t.Run("UnknownKeys", func(t *testing.T) {
		testUnknownKeys(t)
	})

	t.Run("InvalidSalt", func(t *testing.T) {
		testInvalidSalt(t)
	})
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// testPartialConfigKeepsDefaults tests that unset keys fall back to defaults.
func testPartialConfigKeepsDefaults(t *testing.T) {
	dir := withTempConfigDir(t)
	writeConfig(t, dir, "[display]\nart = \"ascii\"\n")

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if config.Display.Art != "ascii" {
		t.Errorf("Expected art ascii, got %q", config.Display.Art)
	}
	defaults := DefaultUserConfig()
	if config.Keys != defaults.Keys {
		t.Errorf("Expected default keys section, got %+v", config.Keys)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to stay enabled by default")
	}
}

// testMalformedConfig tests that a broken file is reported rather than ignored.
func testMalformedConfig(t *testing.T) {
	dir := withTempConfigDir(t)
	writeConfig(t, dir, "[display\nart = ")

	if _, err := LoadUserConfig(); err == nil {
		t.Fatal("Expected error for malformed config")
	}
}

// testUnknownKeys tests that misspelled keys are rejected.
func testUnknownKeys(t *testing.T) {
	dir := withTempConfigDir(t)
	writeConfig(t, dir, "[keys]\nenvv = \"X\"\n")

	_, err := LoadUserConfig()
	var unknown *UnknownKeysError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownKeysError, got %v", err)
	}
	if len(unknown.Keys) != 1 || unknown.Keys[0].String() != "keys.envv" {
		t.Errorf("Unexpected unknown keys: %v", unknown.Keys)
	}
}

// testInvalidSalt tests that a corrupted salt is reported on use.
func testInvalidSalt(t *testing.T) {
	k := Keys{Salt: "zz"}
	if _, err := k.SaltBytes(); err == nil {
		t.Fatal("Expected error for non-hex salt")
	}
}
