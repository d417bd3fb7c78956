package docker

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a testify mock of API.
type MockAPI struct {
	mock.Mock
}

var _ API = (*MockAPI)(nil)

// NewMockAPI creates a MockAPI whose expectations are asserted when the test ends.
func NewMockAPI(t interface {
	mock.TestingT
	Cleanup(fn func())
},
) *MockAPI {
	m := &MockAPI{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// ContainerList mocks listing containers.
func (m *MockAPI) ContainerList(
	ctx context.Context,
	options container.ListOptions,
) ([]container.Summary, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).([]container.Summary)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// ContainerInspect mocks inspecting a container.
func (m *MockAPI) ContainerInspect(
	ctx context.Context,
	containerID string,
) (container.InspectResponse, error) {
	args := m.Called(ctx, containerID)

	result, _ := args.Get(0).(container.InspectResponse)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// ContainerStop mocks stopping a container.
func (m *MockAPI) ContainerStop(
	ctx context.Context,
	containerID string,
	options container.StopOptions,
) error {
	return m.Called(ctx, containerID, options).Error(0) //nolint:wrapcheck // Mock function
}

// ContainerRemove mocks removing a container.
func (m *MockAPI) ContainerRemove(
	ctx context.Context,
	containerID string,
	options container.RemoveOptions,
) error {
	return m.Called(ctx, containerID, options).Error(0) //nolint:wrapcheck // Mock function
}

// ImageList mocks listing images.
func (m *MockAPI) ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).([]image.Summary)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// ImageRemove mocks removing an image.
func (m *MockAPI) ImageRemove(
	ctx context.Context,
	imageID string,
	options image.RemoveOptions,
) ([]image.DeleteResponse, error) {
	args := m.Called(ctx, imageID, options)

	result, _ := args.Get(0).([]image.DeleteResponse)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// VolumeList mocks listing volumes.
func (m *MockAPI) VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).(volume.ListResponse)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// VolumeRemove mocks removing a volume.
func (m *MockAPI) VolumeRemove(ctx context.Context, volumeID string, force bool) error {
	return m.Called(ctx, volumeID, force).Error(0) //nolint:wrapcheck // Mock function
}

// NetworkList mocks listing networks.
func (m *MockAPI) NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).([]network.Summary)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// NetworkRemove mocks removing a network.
func (m *MockAPI) NetworkRemove(ctx context.Context, networkID string) error {
	return m.Called(ctx, networkID).Error(0) //nolint:wrapcheck // Mock function
}

// BuildCachePrune mocks pruning the build cache.
func (m *MockAPI) BuildCachePrune(
	ctx context.Context,
	options build.CachePruneOptions,
) (*build.CachePruneReport, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).(*build.CachePruneReport)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// DiskUsage mocks reading disk usage.
func (m *MockAPI) DiskUsage(ctx context.Context, options types.DiskUsageOptions) (types.DiskUsage, error) {
	args := m.Called(ctx, options)

	result, _ := args.Get(0).(types.DiskUsage)

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Close mocks closing the client.
func (m *MockAPI) Close() error {
	return m.Called().Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}
