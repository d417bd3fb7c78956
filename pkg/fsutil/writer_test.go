package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
	}{
		{name: "creates file and parents"},
		{name: "replaces existing file", existing: "stale: true\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			output := filepath.Join(dir, "jenkins", "casc.generated.yaml")

			if testCase.existing != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o750))
				require.NoError(t, os.WriteFile(output, []byte(testCase.existing), fsutil.FilePermUserRW))
			}

			err := fsutil.WriteFileAtomic(output, []byte("jenkins: {}\n"), fsutil.FilePermWorldRead)
			require.NoError(t, err)

			//nolint:gosec // G304: path is created by the test (temp directory).
			content, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Equal(t, "jenkins: {}\n", string(content))

			info, err := os.Stat(output)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(fsutil.FilePermWorldRead), info.Mode().Perm())

			entries, err := os.ReadDir(filepath.Dir(output))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file should not remain")
		})
	}
}

func TestWriteFileAtomic_EmptyOutput(t *testing.T) {
	t.Parallel()

	err := fsutil.WriteFileAtomic("", []byte("x"), fsutil.FilePermUserRW)

	require.ErrorIs(t, err, fsutil.ErrEmptyOutputPath)
}

func TestReadFileOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "casc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("custom"), fsutil.FilePermUserRW))

	content, found, err := fsutil.ReadFileOrDefault(path, []byte("fallback"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "custom", string(content))

	content, found, err = fsutil.ReadFileOrDefault(filepath.Join(dir, "missing.yaml"), []byte("fallback"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "fallback", string(content))

	content, found, err = fsutil.ReadFileOrDefault("", []byte("fallback"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "fallback", string(content))

	_, _, err = fsutil.ReadFileOrDefault(dir, nil)
	require.Error(t, err)
}
