package casc

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
)

// ErrCommandRequired is returned when the exec generator has no program to run.
var ErrCommandRequired = errors.New("casc generator command is required")

// ExecGenerator runs an external generator. The program receives every agent name followed by
// every agent address, so argument i and argument i+len(agents) describe the same agent.
type ExecGenerator struct {
	runner  runner.CommandRunner
	command []string
}

var _ Generator = (*ExecGenerator)(nil)

// NewExecGenerator returns a generator running command with the agent arguments appended.
func NewExecGenerator(commandRunner runner.CommandRunner, command []string) *ExecGenerator {
	return &ExecGenerator{runner: commandRunner, command: command}
}

// Generate runs the external program once for agents.
func (g *ExecGenerator) Generate(ctx context.Context, agents []discovery.AgentRecord) error {
	if len(g.command) == 0 || g.command[0] == "" {
		return ErrCommandRequired
	}

	_, err := g.runner.Run(ctx, runner.Command{
		Name: g.command[0],
		Args: Args(g.command[1:], agents),
	})
	if err != nil {
		return fmt.Errorf("casc generator: %w", err)
	}

	return nil
}

// Args appends the agent names and then the agent addresses to prefix.
func Args(prefix []string, agents []discovery.AgentRecord) []string {
	args := make([]string, 0, len(prefix)+2*len(agents))
	args = append(args, prefix...)

	for _, agent := range agents {
		args = append(args, agent.Name)
	}

	for _, agent := range agents {
		args = append(args, agent.IP)
	}

	return args
}
