package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/paks/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserPaksSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	UserPaksSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "paks"),
		UserDataPath:    filepath.Join(dataDir, "paks"),
		Username:        username,
	}
}
