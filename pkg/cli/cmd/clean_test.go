package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/devantler-tech/jenkins-manager/pkg/cli/cmd"
	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errDaemon = errors.New("daemon unavailable")

func TestClean_EmptyHost(t *testing.T) {
	t.Parallel()

	configPath, _ := writeConfig(t, "")

	api := docker.NewMockAPI(t)
	api.On("ContainerList", mock.Anything, container.ListOptions{}).Return([]container.Summary{}, nil)
	api.On("ContainerList", mock.Anything, container.ListOptions{All: true}).Return([]container.Summary{}, nil)
	api.On("ImageList", mock.Anything, image.ListOptions{All: true}).Return([]image.Summary{}, nil)
	api.On("VolumeList", mock.Anything, volume.ListOptions{}).Return(volume.ListResponse{}, nil)
	api.On("BuildCachePrune", mock.Anything, build.CachePruneOptions{All: true}).
		Return(&build.CachePruneReport{}, nil)
	api.On("NetworkList", mock.Anything, network.ListOptions{}).Return([]network.Summary{
		{ID: "n1", Name: network.NetworkBridge},
		{ID: "n2", Name: network.NetworkHost},
		{ID: "n3", Name: network.NetworkNone},
	}, nil)
	api.On("DiskUsage", mock.Anything, types.DiskUsageOptions{}).Return(types.DiskUsage{}, nil)
	api.On("Close").Return(nil)

	var out bytes.Buffer

	root := newTestRoot(api, runner.NewMockCommandRunner(), &out, "clean", "--config", configPath)

	require.NoError(t, cmd.Execute(context.Background(), root))
	api.AssertNotCalled(t, "NetworkRemove", mock.Anything, mock.Anything)
	assert.Contains(t, out.String(), "disk usage after cleanup")
	assert.Contains(t, out.String(), "docker resources cleaned")
	assert.NotContains(t, out.String(), "could not be removed")
}

func TestClean_ListFailureAborts(t *testing.T) {
	t.Parallel()

	configPath, _ := writeConfig(t, "")

	api := docker.NewMockAPI(t)
	api.On("ContainerList", mock.Anything, container.ListOptions{}).Return(nil, errDaemon)
	api.On("Close").Return(nil)

	var out bytes.Buffer

	root := newTestRoot(api, runner.NewMockCommandRunner(), &out, "clean", "--config", configPath)

	err := cmd.Execute(context.Background(), root)

	require.ErrorIs(t, err, errDaemon)
	assert.Contains(t, err.Error(), "clean: stop containers: list containers")
}

func TestClean_ReportsFailedRemovals(t *testing.T) {
	t.Parallel()

	configPath, _ := writeConfig(t, "")

	api := docker.NewMockAPI(t)
	api.On("ContainerList", mock.Anything, container.ListOptions{}).Return([]container.Summary{}, nil)
	api.On("ContainerList", mock.Anything, container.ListOptions{All: true}).Return([]container.Summary{}, nil)
	api.On("ImageList", mock.Anything, image.ListOptions{All: true}).
		Return([]image.Summary{{ID: "sha256:abc"}}, nil)
	api.On("ImageRemove", mock.Anything, "sha256:abc", image.RemoveOptions{Force: true, PruneChildren: true}).
		Return(nil, errDaemon)
	api.On("VolumeList", mock.Anything, volume.ListOptions{}).Return(volume.ListResponse{}, nil)
	api.On("BuildCachePrune", mock.Anything, build.CachePruneOptions{All: true}).
		Return(&build.CachePruneReport{}, nil)
	api.On("NetworkList", mock.Anything, network.ListOptions{}).Return([]network.Summary{}, nil)
	api.On("DiskUsage", mock.Anything, types.DiskUsageOptions{}).Return(types.DiskUsage{}, nil)
	api.On("Close").Return(nil)

	var out bytes.Buffer

	root := newTestRoot(api, runner.NewMockCommandRunner(), &out, "clean", "--config", configPath)

	require.NoError(t, cmd.Execute(context.Background(), root))
	assert.Contains(t, out.String(), "1 resources could not be removed")
}
