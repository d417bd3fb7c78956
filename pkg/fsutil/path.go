package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHomePath resolves a leading ~ to the home directory and makes path absolute.
func ExpandHomePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}

		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s to an absolute path: %w", path, err)
	}

	return absPath, nil
}
