package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces output with content. The content is written to a temporary file in
// the same directory and renamed over output, so readers never see a partial file. Missing
// parent directories are created.
func WriteFileAtomic(output string, content []byte, perm fs.FileMode) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)
	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(output)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	defer func() { _ = os.Remove(tmpName) }()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(perm)
	}

	closeErr := tmp.Close()

	err = errors.Join(err, closeErr)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	err = os.Rename(tmpName, output)
	if err != nil {
		return fmt.Errorf("failed to replace file %s: %w", output, err)
	}

	return nil
}

// ReadFileOrDefault returns the content of path, or fallback when path does not exist.
// The boolean reports whether the file was found.
func ReadFileOrDefault(path string, fallback []byte) ([]byte, bool, error) {
	if path == "" {
		return fallback, false, nil
	}

	content, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		return content, true, nil
	case errors.Is(err, fs.ErrNotExist):
		return fallback, false, nil
	default:
		return nil, false, fmt.Errorf("failed to read file %s: %w", path, err)
	}
}
