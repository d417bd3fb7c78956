package docker

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
)

// ContainerAPI is the subset of the Engine API used to find and inspect containers.
type ContainerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// ResourceAPI is the subset of the Engine API used to reclaim host resources.
type ResourceAPI interface {
	ContainerAPI

	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageRemove(
		ctx context.Context,
		imageID string,
		options image.RemoveOptions,
	) ([]image.DeleteResponse, error)
	VolumeList(ctx context.Context, options volume.ListOptions) (volume.ListResponse, error)
	VolumeRemove(ctx context.Context, volumeID string, force bool) error
	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	NetworkRemove(ctx context.Context, networkID string) error
	BuildCachePrune(
		ctx context.Context,
		options build.CachePruneOptions,
	) (*build.CachePruneReport, error)
	DiskUsage(ctx context.Context, options types.DiskUsageOptions) (types.DiskUsage, error)
}

// API is everything jenkins-manager needs from a Docker client.
type API interface {
	ResourceAPI

	Close() error
}

// Compile-time interface compliance verification.
var _ API = (*client.Client)(nil)
