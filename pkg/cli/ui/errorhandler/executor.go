// Package errorhandler runs the root command and folds what cobra prints on failure into the
// returned error, so main prints one message.
package errorhandler

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

const interruptedMessage = "interrupted"

// Executor runs a cobra command with its stderr captured.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs cmd with ctx. Failures are returned as *CommandError holding the cleaned-up
// stderr output and the original error. A run stopped by ctx cancellation reads "interrupted".
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	stderr := cmd.ErrOrStderr()
	cmd.SetErr(&captured)

	defer cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	message := e.normalizer.Normalize(captured.String())
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		message = interruptedMessage
	}

	return &CommandError{message: message, cause: err}
}

// CommandError is a failed command run.
type CommandError struct {
	message string
	cause   error
}

// Error joins the captured message and the cause, dropping the cause when the message already
// contains it.
func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause == nil {
		return e.message
	}

	cause := e.cause.Error()
	if e.message == "" || strings.Contains(e.message, cause) {
		return firstNonEmpty(e.message, cause)
	}

	return e.message + ": " + cause
}

// Unwrap returns the error the command failed with.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up cobra's stderr output.
type DefaultNormalizer struct{}

// Normalize trims the output and strips cobra's "Error: " prefix from the first line.
// Usage hints on later lines are kept.
func (DefaultNormalizer) Normalize(raw string) string {
	first, rest, found := strings.Cut(strings.TrimSpace(raw), "\n")

	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")
	if !found {
		return first
	}

	return first + "\n" + rest
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
