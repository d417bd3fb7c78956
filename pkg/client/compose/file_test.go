package compose_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/client/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCompose = `name: Jenkins-CI
services:
  jenkins:
    build: ./jenkins
    ports:
      - "8080:8080"
  jenkins-agent:
    build: ./agent
    environment:
      - JENKINS_AGENT_SSH_PUBKEY
`

func writeCompose(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	file, err := compose.LoadFile(writeCompose(t, sampleCompose))

	require.NoError(t, err)
	assert.Equal(t, "Jenkins-CI", file.Name)
	assert.Equal(t, []string{"jenkins", "jenkins-agent"}, file.ServiceNames())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := compose.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = compose.LoadFile(writeCompose(t, "services: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse compose file")
}

func TestDetectServices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		override compose.Services
		want     compose.Services
		wantErr  error
	}{
		{
			name:    "jenkins controller",
			content: sampleCompose,
			want:    compose.Services{Agent: "jenkins-agent", Controller: "jenkins"},
		},
		{
			name:    "controller by substring",
			content: "services:\n  ci-controller: {}\n  agent: {}\n",
			want:    compose.Services{Agent: "agent", Controller: "ci-controller"},
		},
		{
			name:     "override wins",
			content:  "services:\n  main: {}\n  worker: {}\n",
			override: compose.Services{Agent: "worker", Controller: "main"},
			want:     compose.Services{Agent: "worker", Controller: "main"},
		},
		{
			name:    "missing agent",
			content: "services:\n  jenkins: {}\n",
			wantErr: compose.ErrServiceNotFound,
		},
		{
			name:    "missing controller",
			content: "services:\n  agent: {}\n",
			wantErr: compose.ErrServiceNotFound,
		},
		{
			name:    "ambiguous agent",
			content: "services:\n  jenkins: {}\n  agent-a: {}\n  agent-b: {}\n",
			wantErr: compose.ErrAmbiguousService,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file, err := compose.LoadFile(writeCompose(t, tc.content))
			require.NoError(t, err)

			got, err := file.DetectServices(tc.override)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProjectName(t *testing.T) {
	t.Setenv(compose.ProjectNameEnv, "")

	assert.Equal(t, "explicit", compose.ProjectName("Explicit", &compose.File{Name: "other"}, "x.yml"))
	assert.Equal(t, "jenkins-ci", compose.ProjectName("", &compose.File{Name: "Jenkins-CI"}, "x.yml"))
	assert.Equal(t, "myproject", compose.ProjectName("", nil, "/srv/My.Project/docker-compose.yml"))
	assert.Equal(t, "ci_default", compose.DefaultNetwork("ci"))
}

func TestProjectName_Environment(t *testing.T) {
	t.Setenv(compose.ProjectNameEnv, "CI")

	assert.Equal(t, "ci", compose.ProjectName("", &compose.File{}, "/srv/jenkins/docker-compose.yml"))
	assert.Equal(t, "ci", compose.ProjectName("", &compose.File{Name: "from-file"}, "x.yml"))
	assert.Equal(t, "explicit", compose.ProjectName("explicit", nil, "x.yml"))
}

func TestProjectName_DotEnv(t *testing.T) {
	t.Setenv(compose.ProjectNameEnv, "")

	dir := filepath.Join(t.TempDir(), "jenkins")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COMPOSE_PROJECT_NAME=nightly\n"), 0o600))

	path := filepath.Join(dir, "docker-compose.yml")

	assert.Equal(t, "nightly", compose.ProjectName("", &compose.File{Name: "from-file"}, path))

	t.Setenv(compose.ProjectNameEnv, "ci")
	assert.Equal(t, "ci", compose.ProjectName("", nil, path))
}
