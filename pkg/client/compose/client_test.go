package compose_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/client/compose"
	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errComposeFailed = errors.New("compose failed")

func TestUpArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		project string
		opts    compose.UpOptions
		want    []string
	}{
		{
			name:    "scale agents",
			file:    "docker-compose.yml",
			project: "ci",
			opts: compose.UpOptions{
				Services: []string{"jenkins-agent"},
				Build:    true,
				Detach:   true,
				Scale:    map[string]int{"jenkins-agent": 3},
			},
			want: []string{
				"compose", "-f", "docker-compose.yml", "-p", "ci",
				"up", "jenkins-agent", "--build", "-d", "--scale", "jenkins-agent=3",
			},
		},
		{
			name: "controller without project",
			file: "docker-compose.yml",
			opts: compose.UpOptions{Services: []string{"jenkins"}, Build: true, Detach: true},
			want: []string{"compose", "-f", "docker-compose.yml", "up", "jenkins", "--build", "-d"},
		},
		{
			name: "scale flags sorted",
			opts: compose.UpOptions{Scale: map[string]int{"b": 2, "a": 1}},
			want: []string{"compose", "up", "--scale", "a=1", "--scale", "b=2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cli := compose.NewCLI(runner.NewMockCommandRunner(), tc.file, tc.project)
			assert.Equal(t, tc.want, cli.UpArgs(tc.opts))
		})
	}
}

func TestUp_PassesEnvToChildOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commandRunner := runner.NewMockCommandRunner()
	env := []string{"JENKINS_AGENT_SSH_PUBKEY=ssh-ed25519 AAAA"}

	commandRunner.On("Run", ctx, mock.MatchedBy(func(cmd runner.Command) bool {
		return cmd.Name == "docker" && assert.ObjectsAreEqual(env, cmd.Env)
	})).Return(runner.CommandResult{}, nil).Once()

	cli := compose.NewCLI(commandRunner, "docker-compose.yml", "")

	err := cli.Up(ctx, compose.UpOptions{Services: []string{"jenkins"}, Env: env})

	require.NoError(t, err)
	commandRunner.AssertExpectations(t)
}

func TestUp_WrapsRunnerError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commandRunner := runner.NewMockCommandRunner()
	commandRunner.On("Run", ctx, mock.Anything).Return(runner.CommandResult{}, errComposeFailed)

	err := compose.NewCLI(commandRunner, "docker-compose.yml", "").
		Up(ctx, compose.UpOptions{Services: []string{"jenkins"}})

	require.ErrorIs(t, err, errComposeFailed)
	assert.Contains(t, err.Error(), "docker compose up [jenkins]")
}
