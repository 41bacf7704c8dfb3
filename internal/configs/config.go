package configs

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/PolarWolf314/paks/internal/keys"
)

type UserConfig struct {
	User    User    `toml:"user"`
	Display Display `toml:"display"`
	Keys    Keys    `toml:"keys"`
	Audit   Audit   `toml:"audit"`
}

type User struct {
	UUID string `toml:"user_uuid"`
}

type Display struct {
	Art string `toml:"art"`
}

type Keys struct {
	Env         string `toml:"env"`
	Salt        string `toml:"salt"`
	Memory      uint32 `toml:"memory"`
	Iterations  uint32 `toml:"iterations"`
	Parallelism uint8  `toml:"parallelism"`
}

type Audit struct {
	Enabled bool `toml:"enabled"`
}

var GlobalUserConfig *UserConfig

// DefaultUserConfig returns the configuration used when no file exists.
func DefaultUserConfig() *UserConfig {
	p := keys.DefaultParams()
	return &UserConfig{
		Display: Display{Art: "unicode"},
		Keys: Keys{
			Env:         "PAKS_KEY",
			Memory:      p.Memory,
			Iterations:  p.Iterations,
			Parallelism: p.Parallelism,
		},
		Audit: Audit{Enabled: true},
	}
}

// ConfigPath returns the location of the user config file.
func ConfigPath() string {
	return filepath.Join(UserPaksSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration from the config file. Keys
// missing from the file keep their defaults.
func LoadUserConfig() (*UserConfig, error) {
	configPath := ConfigPath()
	config := DefaultUserConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateUserUUID generates a new UUID for the user.
func GenerateUserUUID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has a UUID and
// a passphrase salt.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	changed := false
	if config.User.UUID == "" {
		config.User.UUID = GenerateUserUUID()
		changed = true
	}
	if config.Keys.Salt == "" {
		salt, err := keys.NewSalt()
		if err != nil {
			return nil, err
		}
		config.Keys.Salt = hex.EncodeToString(salt)
		changed = true
	}

	if changed {
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}

// SaltBytes decodes the configured passphrase salt.
func (k Keys) SaltBytes() ([]byte, error) {
	salt, err := hex.DecodeString(k.Salt)
	if err != nil {
		return nil, fmt.Errorf("invalid salt in config: %w", err)
	}
	return salt, nil
}

// Params returns the configured Argon2id parameters.
func (k Keys) Params() keys.Params {
	return keys.Params{Memory: k.Memory, Iterations: k.Iterations, Parallelism: k.Parallelism}
}
