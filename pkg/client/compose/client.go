package compose

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
)

// UpOptions configures one `docker compose up` invocation.
type UpOptions struct {
	Services []string
	Build    bool
	Detach   bool
	// Scale maps a service to its replica count.
	Scale map[string]int
	// Env holds KEY=VALUE pairs visible to compose variable substitution. They are set on the
	// compose process only.
	Env []string
}

// Client brings compose services up.
type Client interface {
	Up(ctx context.Context, opts UpOptions) error
}

// CLI is a Client backed by the docker compose plugin.
type CLI struct {
	runner  runner.CommandRunner
	binary  string
	file    string
	project string
}

var _ Client = (*CLI)(nil)

// NewCLI returns a compose client for file and project. An empty project lets compose derive it.
func NewCLI(commandRunner runner.CommandRunner, file, project string) *CLI {
	return &CLI{
		runner:  commandRunner,
		binary:  "docker",
		file:    file,
		project: project,
	}
}

// Up runs `docker compose up` with opts.
func (c *CLI) Up(ctx context.Context, opts UpOptions) error {
	cmd := runner.Command{
		Name: c.binary,
		Args: c.UpArgs(opts),
		Env:  opts.Env,
	}

	_, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("docker compose up %v: %w", opts.Services, err)
	}

	return nil
}

// UpArgs returns the arguments passed to the docker binary for opts.
func (c *CLI) UpArgs(opts UpOptions) []string {
	args := []string{"compose"}

	if c.file != "" {
		args = append(args, "-f", c.file)
	}

	if c.project != "" {
		args = append(args, "-p", c.project)
	}

	args = append(args, "up")
	args = append(args, opts.Services...)

	if opts.Build {
		args = append(args, "--build")
	}

	if opts.Detach {
		args = append(args, "-d")
	}

	services := make([]string, 0, len(opts.Scale))
	for service := range opts.Scale {
		services = append(services, service)
	}

	sort.Strings(services)

	for _, service := range services {
		args = append(args, "--scale", service+"="+strconv.Itoa(opts.Scale[service]))
	}

	return args
}
