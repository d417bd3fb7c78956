package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	workDir, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "home directory", input: "~", expected: home},
		{name: "inside home", input: "~/.config/jenkins-manager", expected: filepath.Join(home, ".config", "jenkins-manager")},
		{name: "relative", input: "jenkins/casc.yaml", expected: filepath.Join(workDir, "jenkins", "casc.yaml")},
		{name: "absolute", input: "/etc/jenkins", expected: "/etc/jenkins"},
		{name: "tilde inside name", input: "/tmp/~backup", expected: "/tmp/~backup"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actual, err := fsutil.ExpandHomePath(testCase.input)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}
