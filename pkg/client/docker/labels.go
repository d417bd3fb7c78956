package docker

import (
	"sort"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
)

// Labels docker compose sets on the containers it creates.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
	LabelComposeNumber  = "com.docker.compose.container-number"
)

// ServiceFilter selects the containers of a compose service, optionally restricted to a project.
func ServiceFilter(project, service string) filters.Args {
	args := filters.NewArgs(filters.Arg("label", LabelComposeService+"="+service))
	if project != "" {
		args.Add("label", LabelComposeProject+"="+project)
	}

	return args
}

// ContainerName returns the primary name of c without the leading slash.
func ContainerName(c container.Summary) string {
	if len(c.Names) == 0 {
		return c.ID
	}

	return strings.TrimPrefix(c.Names[0], "/")
}

// SortByReplica orders containers by their compose replica number, then by name.
// Containers without a number label sort after numbered ones.
func SortByReplica(containers []container.Summary) {
	sort.SliceStable(containers, func(i, j int) bool {
		left, leftOK := replicaNumber(containers[i])
		right, rightOK := replicaNumber(containers[j])

		switch {
		case leftOK && rightOK && left != right:
			return left < right
		case leftOK != rightOK:
			return leftOK
		default:
			return ContainerName(containers[i]) < ContainerName(containers[j])
		}
	})
}

func replicaNumber(c container.Summary) (int, bool) {
	raw, ok := c.Labels[LabelComposeNumber]
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
