package cleaner

import (
	"io"

	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/docker/docker/api/types"
	units "github.com/docker/go-units"
)

// StepReport counts what one cleanup step did.
type StepReport struct {
	Name    string
	Removed int
	// Gone counts items that disappeared before they could be removed.
	Gone   int
	Failed int
	// Reclaimed is the number of bytes the step reports as freed.
	Reclaimed uint64
}

// ResourceUsage is the count and size of one kind of resource.
type ResourceUsage struct {
	Count int
	Size  int64
}

// Usage summarizes Docker disk usage.
type Usage struct {
	Images     ResourceUsage
	Containers ResourceUsage
	Volumes    ResourceUsage
	BuildCache ResourceUsage
}

// Report is the outcome of a cleanup run.
type Report struct {
	Steps []StepReport
	Usage Usage
}

// Failed returns the number of items that could not be removed across all steps.
func (r Report) Failed() int {
	failed := 0
	for _, step := range r.Steps {
		failed += step.Failed
	}

	return failed
}

func usageFrom(du types.DiskUsage) Usage {
	usage := Usage{
		Images:     ResourceUsage{Count: len(du.Images), Size: du.LayersSize},
		Containers: ResourceUsage{Count: len(du.Containers)},
		Volumes:    ResourceUsage{Count: len(du.Volumes)},
		BuildCache: ResourceUsage{Count: len(du.BuildCache)},
	}

	for _, c := range du.Containers {
		if c != nil {
			usage.Containers.Size += c.SizeRw
		}
	}

	for _, v := range du.Volumes {
		if v != nil && v.UsageData != nil && v.UsageData.Size > 0 {
			usage.Volumes.Size += v.UsageData.Size
		}
	}

	for _, record := range du.BuildCache {
		if record != nil && !record.Shared {
			usage.BuildCache.Size += record.Size
		}
	}

	return usage
}

// PrintUsage writes a human-readable disk usage summary.
func PrintUsage(writer io.Writer, usage Usage) {
	notify.Infof(writer, "disk usage after cleanup")

	rows := []struct {
		name  string
		usage ResourceUsage
	}{
		{"images", usage.Images},
		{"containers", usage.Containers},
		{"volumes", usage.Volumes},
		{"build cache", usage.BuildCache},
	}

	for _, row := range rows {
		notify.WriteMessage(notify.Message{
			Type:    notify.InfoType,
			Content: "  %-12s %3d  %s",
			Args:    []any{row.name + ":", row.usage.Count, units.HumanSize(float64(row.usage.Size))},
			Writer:  writer,
		})
	}
}
