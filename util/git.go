package util

import (
	"os"
	"path/filepath"
)

// FindWorkspaceRoot walks up from start looking for a .git directory.
// Returns start itself if no repository root is found.
func FindWorkspaceRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	origin := dir

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return origin, nil
		}
		dir = parent
	}
}
