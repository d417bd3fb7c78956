// Package docker wraps the Docker Engine API client used to inspect, stop and remove
// containers and to reclaim images, volumes, networks and build cache.
package docker

import (
	"fmt"

	"github.com/docker/docker/client"
)

// GetDockerClient creates a Docker client from DOCKER_HOST and related environment variables,
// negotiating the API version with the daemon.
func GetDockerClient() (API, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}
