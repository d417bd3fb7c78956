package casc

import (
	"context"

	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a testify mock of Generator.
type MockGenerator struct {
	mock.Mock
}

// Generate mocks CasC generation.
func (m *MockGenerator) Generate(ctx context.Context, agents []discovery.AgentRecord) error {
	return m.Called(ctx, agents).Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}
