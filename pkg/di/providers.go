package di

import (
	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers default implementations for the timer, the Docker client and the command runner.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideDockerClient,
		provideCommandRunner,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideDockerClient registers a lazily created Docker Engine client.
func provideDockerClient(i Injector) error {
	do.Provide(i, func(Injector) (docker.API, error) {
		return docker.GetDockerClient()
	})

	return nil
}

// provideCommandRunner registers a runner streaming child output to the process stdio.
func provideCommandRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.CommandRunner, error) {
		return runner.NewExecRunner(nil, nil), nil
	})

	return nil
}

// ProvideValue returns a module registering value as the implementation of T.
func ProvideValue[T any](value T) Module {
	return func(i Injector) error {
		do.ProvideValue(i, value)

		return nil
	}
}
