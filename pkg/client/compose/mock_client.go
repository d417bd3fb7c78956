package compose

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of Client.
type MockClient struct {
	mock.Mock
}

// NewMockClient creates a new MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Up mocks bringing services up.
func (m *MockClient) Up(ctx context.Context, opts UpOptions) error {
	return m.Called(ctx, opts).Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}
