// Package runner executes external tools (docker compose, ssh-keygen, CasC generators)
// while streaming their output to the console and capturing it for callers.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when a Command has no executable name.
var ErrEmptyCommand = errors.New("command name is empty")

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Env holds KEY=VALUE pairs added to the inherited environment of the child process only.
	Env []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command line without its environment.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResult captures the complete stdout and stderr of a finished process, including
// output written before a failure.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner runs external processes.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}

// ExecRunner runs processes with os/exec, teeing their output to stdout/stderr.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner returns a runner that streams output to stdout and stderr.
// Nil writers default to os.Stdout and os.Stderr.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecRunner{stdout: stdout, stderr: stderr}
}

// Run starts cmd and waits for it. The process is killed when ctx is done.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	if cmd.Name == "" {
		return CommandResult{}, ErrEmptyCommand
	}

	var outBuf, errBuf bytes.Buffer

	//nolint:gosec // commands are assembled from configuration by the caller.
	process := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	process.Dir = cmd.Dir
	process.Stdout = io.MultiWriter(&outBuf, r.stdout)
	process.Stderr = io.MultiWriter(&errBuf, r.stderr)

	if len(cmd.Env) > 0 {
		process.Env = append(os.Environ(), cmd.Env...)
	}

	runErr := process.Run()

	result := CommandResult{Stdout: outBuf.String(), Stderr: errBuf.String()}
	if runErr != nil {
		return result, fmt.Errorf("run %q: %w", cmd.Name, runErr)
	}

	return result, nil
}
