// Package cleaner reclaims every Docker resource on the host: containers, images, volumes,
// build cache and user-defined networks.
//
// Cleanup is not scoped to a compose project. Each step tolerates an empty selection, and a
// failure to remove one item is reported as a warning without stopping the run.
package cleaner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/containerd/errdefs"
	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/sirupsen/logrus"
)

// Step names as they appear in a Report.
const (
	StepStopContainers   = "stop containers"
	StepRemoveContainers = "remove containers"
	StepRemoveImages     = "remove images"
	StepRemoveVolumes    = "remove volumes"
	StepPruneBuildCache  = "prune build cache"
	StepRemoveNetworks   = "remove networks"
)

var defaultNetworks = map[string]struct{}{
	network.NetworkBridge: {},
	network.NetworkHost:   {},
	network.NetworkNone:   {},
}

// Cleaner removes Docker resources through the Engine API.
type Cleaner struct {
	api    docker.ResourceAPI
	out    io.Writer
	logger logrus.FieldLogger
}

// NewCleaner returns a Cleaner printing progress to out. A nil out means os.Stdout; a nil
// logger discards debug output.
func NewCleaner(api docker.ResourceAPI, out io.Writer, logger logrus.FieldLogger) *Cleaner {
	if out == nil {
		out = os.Stdout
	}

	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Cleaner{api: api, out: out, logger: logger}
}

// Clean runs every cleanup step in order and prints the remaining disk usage.
func (c *Cleaner) Clean(ctx context.Context) (Report, error) {
	steps := []func(context.Context) (StepReport, error){
		c.stopContainers,
		c.removeContainers,
		c.removeImages,
		c.removeVolumes,
		c.pruneBuildCache,
		c.removeNetworks,
	}

	var report Report

	for _, step := range steps {
		err := ctx.Err()
		if err != nil {
			return report, fmt.Errorf("cleanup aborted: %w", err)
		}

		stepReport, err := step(ctx)
		if err != nil {
			return report, err
		}

		c.logger.WithFields(logrus.Fields{
			"step":    stepReport.Name,
			"removed": stepReport.Removed,
			"gone":    stepReport.Gone,
			"failed":  stepReport.Failed,
		}).Debug("cleanup step finished")

		report.Steps = append(report.Steps, stepReport)
	}

	du, err := c.api.DiskUsage(ctx, types.DiskUsageOptions{})
	if err != nil {
		return report, fmt.Errorf("disk usage: %w", err)
	}

	report.Usage = usageFrom(du)
	PrintUsage(c.out, report.Usage)

	return report, nil
}

func (c *Cleaner) stopContainers(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepStopContainers}

	containers, err := c.api.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return report, fmt.Errorf("%s: list containers: %w", report.Name, err)
	}

	for _, summary := range containers {
		err = c.api.ContainerStop(ctx, summary.ID, container.StopOptions{})
		c.record(&report, docker.ContainerName(summary), err)
	}

	notify.Successf(c.out, "stopped %d containers", report.Removed)

	return report, nil
}

func (c *Cleaner) removeContainers(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepRemoveContainers}

	containers, err := c.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return report, fmt.Errorf("%s: list containers: %w", report.Name, err)
	}

	for _, summary := range containers {
		err = c.api.ContainerRemove(ctx, summary.ID, container.RemoveOptions{Force: true})
		c.record(&report, docker.ContainerName(summary), err)
	}

	notify.Successf(c.out, "removed %d containers", report.Removed)

	return report, nil
}

func (c *Cleaner) removeImages(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepRemoveImages}

	images, err := c.api.ImageList(ctx, image.ListOptions{All: true})
	if err != nil {
		return report, fmt.Errorf("%s: list images: %w", report.Name, err)
	}

	for _, summary := range images {
		_, err = c.api.ImageRemove(ctx, summary.ID, image.RemoveOptions{Force: true, PruneChildren: true})
		c.record(&report, summary.ID, err)
	}

	notify.Successf(c.out, "removed %d images", report.Removed)

	return report, nil
}

func (c *Cleaner) removeVolumes(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepRemoveVolumes}

	volumes, err := c.api.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return report, fmt.Errorf("%s: list volumes: %w", report.Name, err)
	}

	for _, vol := range volumes.Volumes {
		if vol == nil {
			continue
		}

		err = c.api.VolumeRemove(ctx, vol.Name, true)
		c.record(&report, vol.Name, err)
	}

	notify.Successf(c.out, "removed %d volumes", report.Removed)

	return report, nil
}

func (c *Cleaner) pruneBuildCache(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepPruneBuildCache}

	pruned, err := c.api.BuildCachePrune(ctx, build.CachePruneOptions{All: true})
	if err != nil {
		return report, fmt.Errorf("%s: %w", report.Name, err)
	}

	if pruned != nil {
		report.Removed = len(pruned.CachesDeleted)
		report.Reclaimed = pruned.SpaceReclaimed
	}

	notify.Successf(c.out, "pruned %d build cache records", report.Removed)

	return report, nil
}

func (c *Cleaner) removeNetworks(ctx context.Context) (StepReport, error) {
	report := StepReport{Name: StepRemoveNetworks}

	networks, err := c.api.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return report, fmt.Errorf("%s: list networks: %w", report.Name, err)
	}

	for _, summary := range networks {
		if _, ok := defaultNetworks[summary.Name]; ok {
			continue
		}

		err = c.api.NetworkRemove(ctx, summary.ID)
		c.record(&report, summary.Name, err)
	}

	notify.Successf(c.out, "removed %d networks", report.Removed)

	return report, nil
}

// record counts the outcome of removing item. Items already gone are not failures.
func (c *Cleaner) record(report *StepReport, item string, err error) {
	switch {
	case err == nil:
		report.Removed++
	case errdefs.IsNotFound(err):
		report.Gone++
	case errdefs.IsConflict(err):
		report.Failed++
		notify.Warningf(c.out, "%s: %s is in use: %v", report.Name, item, err)
	default:
		report.Failed++
		notify.Warningf(c.out, "%s: %s: %v", report.Name, item, err)
	}
}
