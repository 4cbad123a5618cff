package storage

import (
	"os"
	"path/filepath"
)

// DefaultDir returns the on-disk cache directory, creating it if needed.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "tabiya", "perft")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
