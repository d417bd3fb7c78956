package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, v1alpha1.DefaultAgentCount, cfg.Agents.Count)
	assert.Equal(t, v1alpha1.TimeoutPolicyFail, cfg.Discovery.OnTimeout)
	assert.Equal(t, v1alpha1.GeneratorTemplate, cfg.CasC.Generator)
}

func TestNewConfig_TemplateIsGoTemplate(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()

	// jenkins/casc.yaml is commonly a Jinja2 file that text/template cannot parse.
	assert.Equal(t, "jenkins/casc.yaml.tmpl", cfg.CasC.Template)
	assert.Equal(t, "jenkins/casc.generated.yaml", cfg.CasC.Output)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *v1alpha1.Config)
		wantErr error
	}{
		{
			name:    "negative agent count",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Agents.Count = -1 },
			wantErr: v1alpha1.ErrInvalidAgentCount,
		},
		{
			name:   "zero agent count is allowed",
			mutate: func(cfg *v1alpha1.Config) { cfg.Agents.Count = 0 },
		},
		{
			name:    "missing compose file",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Compose.File = "" },
			wantErr: v1alpha1.ErrComposeFileRequired,
		},
		{
			name:    "unknown keygen",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Keygen = "rsa" },
			wantErr: v1alpha1.ErrInvalidKeygen,
		},
		{
			name:    "zero attempts",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Discovery.Attempts = 0 },
			wantErr: v1alpha1.ErrInvalidDiscovery,
		},
		{
			name:    "zero interval",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Discovery.Interval = 0 },
			wantErr: v1alpha1.ErrInvalidDiscovery,
		},
		{
			name:    "shrinking multiplier",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Discovery.Multiplier = 0.5 },
			wantErr: v1alpha1.ErrInvalidDiscovery,
		},
		{
			name:    "zero concurrency",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Discovery.Concurrency = 0 },
			wantErr: v1alpha1.ErrInvalidDiscovery,
		},
		{
			name:    "unknown timeout policy",
			mutate:  func(cfg *v1alpha1.Config) { cfg.Discovery.OnTimeout = "retry" },
			wantErr: v1alpha1.ErrInvalidTimeoutPolicy,
		},
		{
			name:    "unknown generator",
			mutate:  func(cfg *v1alpha1.Config) { cfg.CasC.Generator = "jinja" },
			wantErr: v1alpha1.ErrInvalidGenerator,
		},
		{
			name:    "exec generator without command",
			mutate:  func(cfg *v1alpha1.Config) { cfg.CasC.Generator = v1alpha1.GeneratorExec },
			wantErr: v1alpha1.ErrCasCCommandRequired,
		},
		{
			name: "exec generator with command",
			mutate: func(cfg *v1alpha1.Config) {
				cfg.CasC.Generator = v1alpha1.GeneratorExec
				cfg.CasC.Command = []string{"python3", "jenkins/generate_casc.py"}
			},
		},
		{
			name:    "template generator without output",
			mutate:  func(cfg *v1alpha1.Config) { cfg.CasC.Output = "" },
			wantErr: v1alpha1.ErrCasCOutputRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := v1alpha1.NewConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_JoinsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()
	cfg.Agents.Count = -2
	cfg.Keygen = "dsa"

	err := cfg.Validate()

	require.ErrorIs(t, err, v1alpha1.ErrInvalidAgentCount)
	require.ErrorIs(t, err, v1alpha1.ErrInvalidKeygen)
}
