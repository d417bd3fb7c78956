package di

import (
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// ResolveTimer returns the run timer.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	return resolve[timer.Timer](injector, "timer")
}

// ResolveDockerClient returns the Docker Engine client. The caller owns closing it.
func ResolveDockerClient(injector Injector) (docker.API, error) {
	return resolve[docker.API](injector, "docker client")
}

// ResolveCommandRunner returns the runner used for docker compose and ssh-keygen.
func ResolveCommandRunner(injector Injector) (runner.CommandRunner, error) {
	return resolve[runner.CommandRunner](injector, "command runner")
}

func resolve[T any](injector Injector, name string) (T, error) {
	value, err := do.Invoke[T](injector)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("resolve %s dependency: %w", name, err)
	}

	return value, nil
}

// WithTimer resolves the timer before calling handler.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
