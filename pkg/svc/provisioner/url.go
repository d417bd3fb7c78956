package provisioner

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/docker/docker/api/types/container"
)

const (
	jenkinsURLEnv  = "JENKINS_URL"
	jenkinsWebPort = "8080"
)

// ResolveJenkinsURL returns JENKINS_URL from the controller container's environment, or
// http://<address>:8080 when it is unset.
func ResolveJenkinsURL(
	ctx context.Context,
	api docker.ContainerAPI,
	project string,
	service string,
	preferredNetwork string,
) (string, error) {
	containers, err := api.ContainerList(ctx, container.ListOptions{
		Filters: docker.ServiceFilter(project, service),
	})
	if err != nil {
		return "", fmt.Errorf("list controller containers: %w", err)
	}

	if len(containers) == 0 {
		return "", fmt.Errorf("%w: service %s", ErrControllerNotFound, service)
	}

	docker.SortByReplica(containers)

	inspect, err := api.ContainerInspect(ctx, containers[0].ID)
	if err != nil {
		return "", fmt.Errorf("inspect controller: %w", err)
	}

	if inspect.Config != nil {
		for _, kv := range inspect.Config.Env {
			value, ok := strings.CutPrefix(kv, jenkinsURLEnv+"=")
			if ok && value != "" {
				return value, nil
			}
		}
	}

	ip, err := docker.ContainerIP(inspect, preferredNetwork)
	if err != nil {
		return "", fmt.Errorf("controller %s: %w", docker.ContainerName(containers[0]), err)
	}

	return "http://" + net.JoinHostPort(ip, jenkinsWebPort), nil
}
