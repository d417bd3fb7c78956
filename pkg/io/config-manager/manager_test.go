package configmanager_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	configmanager "github.com/devantler-tech/jenkins-manager/pkg/io/config-manager"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jenkins-manager.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, "")

	config, err := manager.Load(configmanager.LoadOptions{IgnoreConfigFile: true, Silent: true})

	require.NoError(t, err)

	defaults := v1alpha1.NewConfig()
	assert.Equal(t, defaults.Compose, config.Compose)
	assert.Equal(t, defaults.Agents, config.Agents)
	assert.Equal(t, defaults.Keygen, config.Keygen)
	assert.Equal(t, defaults.Discovery, config.Discovery)
	assert.Equal(t, defaults.CasC.Generator, config.CasC.Generator)
	assert.Equal(t, defaults.CasC.Output, config.CasC.Output)
	assert.Empty(t, config.CasC.Command)
	assert.Equal(t, defaults.Log, config.Log)
	assert.False(t, manager.ConfigFileFound())
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `compose:
  file: ci/docker-compose.yml
  project: ci
  agentService: worker
agents:
  count: 3
keygen: SSH-KEYGEN
discovery:
  attempts: 5
  interval: 500ms
  multiplier: 2
  onTimeout: skip
casc:
  generator: exec
  command: [python3, jenkins/generate_casc.py]
`)

	var out bytes.Buffer

	manager := configmanager.NewConfigManager(&out, path)

	config, err := manager.Load(configmanager.LoadOptions{})

	require.NoError(t, err)
	assert.True(t, manager.ConfigFileFound())
	assert.Equal(t, "ci/docker-compose.yml", config.Compose.File)
	assert.Equal(t, "ci", config.Compose.Project)
	assert.Equal(t, "worker", config.Compose.AgentService)
	assert.Equal(t, 3, config.Agents.Count)
	assert.Equal(t, v1alpha1.KeygenSSHKeygen, config.Keygen)
	assert.Equal(t, 5, config.Discovery.Attempts)
	assert.Equal(t, 500*time.Millisecond, config.Discovery.Interval)
	assert.InDelta(t, 2.0, config.Discovery.Multiplier, 0)
	assert.Equal(t, v1alpha1.DefaultDiscoveryMaxInterval, config.Discovery.MaxInterval)
	assert.Equal(t, v1alpha1.TimeoutPolicySkip, config.Discovery.OnTimeout)
	assert.Equal(t, v1alpha1.GeneratorExec, config.CasC.Generator)
	assert.Equal(t, []string{"python3", "jenkins/generate_casc.py"}, config.CasC.Command)
	assert.Contains(t, out.String(), "config loaded from jenkins-manager.yaml")
}

func TestLoad_InvalidEnum(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "keygen: rsa\n")

	_, err := configmanager.NewConfigManager(&bytes.Buffer{}, path).
		Load(configmanager.LoadOptions{Silent: true})

	require.ErrorIs(t, err, v1alpha1.ErrInvalidKeygen)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "agents:\n  count: -2\ndiscovery:\n  attempts: 0\n")

	_, err := configmanager.NewConfigManager(&bytes.Buffer{}, path).
		Load(configmanager.LoadOptions{Silent: true})

	require.ErrorIs(t, err, v1alpha1.ErrInvalidAgentCount)
	require.ErrorIs(t, err, v1alpha1.ErrInvalidDiscovery)

	config, err := configmanager.NewConfigManager(&bytes.Buffer{}, path).
		Load(configmanager.LoadOptions{Silent: true, SkipValidation: true})

	require.NoError(t, err)
	assert.Equal(t, -2, config.Agents.Count)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := configmanager.NewConfigManager(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.yaml")).
		Load(configmanager.LoadOptions{Silent: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("JENKINS_MANAGER_AGENTS_COUNT", "7")
	t.Setenv("JENKINS_MANAGER_DISCOVERY_INTERVAL", "3s")
	t.Setenv("JENKINS_MANAGER_DISCOVERY_ONTIMEOUT", "Skip")

	path := writeConfig(t, "agents:\n  count: 2\n")

	config, err := configmanager.NewConfigManager(&bytes.Buffer{}, path).
		Load(configmanager.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, 7, config.Agents.Count)
	assert.Equal(t, 3*time.Second, config.Discovery.Interval)
	assert.Equal(t, v1alpha1.TimeoutPolicySkip, config.Discovery.OnTimeout)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	t.Setenv("JENKINS_MANAGER_AGENTS_COUNT", "7")

	path := writeConfig(t, "agents:\n  count: 2\ncompose:\n  file: from-file.yml\n")

	flags := pflag.NewFlagSet("provision", pflag.ContinueOnError)
	flags.IntP("agents", "n", 1, "")
	flags.StringP("compose-file", "f", "docker-compose.yml", "")
	require.NoError(t, flags.Parse([]string{"-n", "4"}))

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, path)
	require.NoError(t, manager.BindFlags(flags, map[string]string{
		"agents.count": "agents",
		"compose.file": "compose-file",
		"casc.output":  "not-registered",
	}))

	config, err := manager.Load(configmanager.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, 4, config.Agents.Count)
	assert.Equal(t, "from-file.yml", config.Compose.File, "unchanged flag must not override the file")
}

func TestLoad_Cached(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, "")

	first, err := manager.Load(configmanager.LoadOptions{IgnoreConfigFile: true, Silent: true})
	require.NoError(t, err)

	second, err := manager.Load(configmanager.LoadOptions{IgnoreConfigFile: true, Silent: true})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestIsExplicit_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "agents:\n  count: 3\n")
	manager := configmanager.NewConfigManager(&bytes.Buffer{}, path)

	_, err := manager.Load(configmanager.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.True(t, manager.IsExplicit("agents.count"))
	assert.False(t, manager.IsExplicit("discovery.attempts"))
}

func TestIsExplicit_Environment(t *testing.T) {
	t.Setenv("JENKINS_MANAGER_AGENTS_COUNT", "2")

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, "")

	_, err := manager.Load(configmanager.LoadOptions{IgnoreConfigFile: true, Silent: true})
	require.NoError(t, err)

	assert.True(t, manager.IsExplicit("agents.count"))
}

func TestEnvVar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JENKINS_MANAGER_DISCOVERY_ONTIMEOUT", configmanager.EnvVar("discovery.onTimeout"))
}

func TestLoad_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("JM_TEST_WORKSPACE", "/srv/ci")

	path := writeConfig(t, "compose:\n  file: ${JM_TEST_WORKSPACE}/docker-compose.yml\n")
	manager := configmanager.NewConfigManager(&bytes.Buffer{}, path)

	config, err := manager.Load(configmanager.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, "/srv/ci/docker-compose.yml", config.Compose.File)
}
