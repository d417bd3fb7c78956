package keypair

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a testify mock of Generator.
type MockGenerator struct {
	mock.Mock
}

// Generate mocks keypair generation.
func (m *MockGenerator) Generate(ctx context.Context) (Keypair, error) {
	args := m.Called(ctx)

	pair, _ := args.Get(0).(Keypair)

	return pair, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
