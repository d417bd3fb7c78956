package cmd

import (
	"io"

	"github.com/devantler-tech/jenkins-manager/pkg/cli/ui/prompt"
)

// SetPrompterForTests replaces the agent count prompt factory and returns a restore function.
func SetPrompterForTests(factory func(in io.Reader, out io.Writer) *prompt.Prompter) func() {
	previous := newPrompter
	newPrompter = factory

	return func() { newPrompter = previous }
}
