package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file readable only by the owner, since
// the user config carries the passphrase salt.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Unknown keys are rejected so
// typos in the config do not go unnoticed.
func LoadTOML(filePath string, data any) error {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &UnknownKeysError{Keys: undecoded}
	}
	return nil
}

// UnknownKeysError lists config keys that match no field.
type UnknownKeysError struct {
	Keys []toml.Key
}

func (e *UnknownKeysError) Error() string {
	msg := "unknown config keys:"
	for _, k := range e.Keys {
		msg += " " + k.String()
	}
	return msg
}
