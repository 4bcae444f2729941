package config

import (
	"os"
	"path/filepath"
)

const appName = "wallfeed"

// DefaultCacheDir returns the XDG cache directory (~/.cache/wallfeed).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
