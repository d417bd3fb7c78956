package docker

import (
	"errors"
	"sort"

	"github.com/docker/docker/api/types/container"
)

// Errors for container address resolution.
var (
	// ErrNoNetworkSettings is returned when a container has no network configuration.
	ErrNoNetworkSettings = errors.New("container has no network settings")
	// ErrNoIPAddress is returned when no attached network reports an address.
	ErrNoIPAddress = errors.New("container has no IP address")
)

// ContainerIP returns the address of an inspected container. The preferred network wins when
// it reports an address; otherwise networks are tried in name order so the result is stable.
func ContainerIP(inspect container.InspectResponse, preferredNetwork string) (string, error) {
	if inspect.NetworkSettings == nil || len(inspect.NetworkSettings.Networks) == 0 {
		return "", ErrNoNetworkSettings
	}

	networks := inspect.NetworkSettings.Networks

	if endpoint, ok := networks[preferredNetwork]; ok && endpoint != nil && endpoint.IPAddress != "" {
		return endpoint.IPAddress, nil
	}

	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if endpoint := networks[name]; endpoint != nil && endpoint.IPAddress != "" {
			return endpoint.IPAddress, nil
		}
	}

	return "", ErrNoIPAddress
}
