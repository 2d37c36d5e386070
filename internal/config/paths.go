package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.kai).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kai"), nil
}

// GetDataPath returns the directory holding saved profiles.
// Resolution order (first match wins):
// 1. Explicit config via "storage.path" (Viper/env/flag)
// 2. Local directory: .kai/data (if exists)
// 3. XDG_DATA_HOME/kai (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.kai/data
func GetDataPath() string {
	if path := viper.GetString("storage.path"); path != "" {
		return path
	}

	localData := filepath.Join(".kai", "data")
	if info, err := os.Stat(localData); err == nil && info.IsDir() {
		return localData
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "kai")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(dir, "data")
}
