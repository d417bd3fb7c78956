package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a testify mock of CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a new MockCommandRunner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Run mocks running a command.
func (m *MockCommandRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	args := m.Called(ctx, cmd)

	result, _ := args.Get(0).(CommandResult)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
