package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "pricescope"

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/pricescope or ~/.config/pricescope
// Windows: %APPDATA%\pricescope
func GetConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/pricescope or ~/.local/share/pricescope
// Windows: %LOCALAPPDATA%\pricescope
func GetDataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, appName), nil
}

func inConfigDir(name string) (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func inDataDir(name string) (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) { return inConfigDir("config.toml") }

// GetWatchlistPath returns the path of watchlist.toml.
func GetWatchlistPath() (string, error) { return inConfigDir("watchlist.toml") }

// GetVaultPath returns the path to the encrypted credential vault.
func GetVaultPath() (string, error) { return inConfigDir("vault.enc") }

// GetStatePath returns the path of the persisted view state.
func GetStatePath() (string, error) { return inDataDir("state.toml") }

// GetCachePath returns the path of the sqlite series cache.
func GetCachePath() (string, error) { return inDataDir("cache.db") }

// EnsureDirs creates all required directories if they don't exist.
func EnsureDirs() error {
	for _, fn := range []func() (string, error){GetConfigDir, GetDataDir} {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
