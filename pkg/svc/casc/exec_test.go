package casc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/casc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errScriptFailed = errors.New("exit status 1")

func TestArgs_NamesThenAddresses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"jenkins/generate_casc.py",
		"ci-jenkins-agent-1", "ci-jenkins-agent-2",
		"172.18.0.3", "172.18.0.4",
	}, casc.Args([]string{"jenkins/generate_casc.py"}, twoAgents()))

	assert.Empty(t, casc.Args(nil, nil))
}

func TestExecGenerator_RunsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commandRunner := runner.NewMockCommandRunner()
	commandRunner.On("Run", ctx, runner.Command{
		Name: "python3",
		Args: []string{
			"jenkins/generate_casc.py",
			"ci-jenkins-agent-1", "ci-jenkins-agent-2",
			"172.18.0.3", "172.18.0.4",
		},
	}).Return(runner.CommandResult{}, nil).Once()

	gen := casc.NewExecGenerator(commandRunner, []string{"python3", "jenkins/generate_casc.py"})

	require.NoError(t, gen.Generate(ctx, twoAgents()))
	commandRunner.AssertExpectations(t)
}

func TestExecGenerator_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	err := casc.NewExecGenerator(runner.NewMockCommandRunner(), nil).Generate(ctx, twoAgents())
	require.ErrorIs(t, err, casc.ErrCommandRequired)

	commandRunner := runner.NewMockCommandRunner()
	commandRunner.On("Run", ctx, runner.Command{Name: "generate", Args: []string{}}).
		Return(runner.CommandResult{}, errScriptFailed)

	err = casc.NewExecGenerator(commandRunner, []string{"generate"}).Generate(ctx, nil)
	require.ErrorIs(t, err, errScriptFailed)
	assert.Contains(t, err.Error(), "casc generator")
}
