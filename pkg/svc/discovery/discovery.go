// Package discovery finds the agent containers of a compose service and waits until each one is
// running and reachable.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/client/netretry"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/poll"
	"github.com/docker/docker/api/types/container"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AgentRecord is one discovered agent container.
type AgentRecord struct {
	ID   string
	Name string
	IP   string
}

// Options configures a discovery run.
type Options struct {
	// Project restricts the container listing to a compose project. Empty matches any project.
	Project string
	// Service is the compose service of the agents.
	Service string
	// Expected is the number of agents that were requested.
	Expected int
	// PreferredNetwork is tried first when reading an agent's address.
	PreferredNetwork string
	Poll             poll.Config
	// Concurrency bounds how many agents are polled at once.
	Concurrency int
	OnTimeout   v1alpha1.TimeoutPolicy
}

// Result is the outcome of a discovery run.
type Result struct {
	// Records are ordered by compose replica number.
	Records []AgentRecord
	// Skipped lists agents dropped under the skip policy.
	Skipped []*AgentError
}

// Discoverer resolves agent containers into AgentRecords.
type Discoverer struct {
	api    docker.ContainerAPI
	logger logrus.FieldLogger
}

// NewDiscoverer returns a Discoverer. A nil logger discards debug output.
func NewDiscoverer(api docker.ContainerAPI, logger logrus.FieldLogger) *Discoverer {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Discoverer{api: api, logger: logger}
}

// Discover lists the agent containers and polls each until it is running and has an address.
//
// With the fail policy any agent failure aborts with a *DiscoveryError. With the skip policy
// failed agents are left out of the records and reported in Result.Skipped.
func (d *Discoverer) Discover(ctx context.Context, opts Options) (Result, error) {
	if opts.Service == "" {
		return Result{}, ErrServiceRequired
	}

	if opts.Expected <= 0 {
		return Result{}, nil
	}

	containers, err := d.listAgents(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	records := make([]AgentRecord, len(containers))
	failures := make([]*AgentError, len(containers))

	var group errgroup.Group

	group.SetLimit(max(opts.Concurrency, 1))

	for i, summary := range containers {
		group.Go(func() error {
			record, agentErr := d.discoverAgent(ctx, summary, opts)
			if agentErr != nil {
				failures[i] = agentErr

				return nil
			}

			records[i] = record

			return nil
		})
	}

	_ = group.Wait()

	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("discover agents: %w", ctx.Err())
	}

	result := collect(records, failures)

	if missing := opts.Expected - len(containers); missing > 0 {
		result.Skipped = append(result.Skipped, &AgentError{
			Name: opts.Service,
			Err:  fmt.Errorf("%w: found %d, requested %d", ErrMissingAgents, len(containers), opts.Expected),
		})
	}

	if len(result.Skipped) == 0 {
		return result, nil
	}

	if opts.OnTimeout == v1alpha1.TimeoutPolicySkip {
		for _, skipped := range result.Skipped {
			d.logger.WithField("agent", skipped.Name).WithError(skipped.Err).Warn("skipping agent")
		}

		return result, nil
	}

	return Result{}, &DiscoveryError{Requested: opts.Expected, Failures: result.Skipped}
}

func collect(records []AgentRecord, failures []*AgentError) Result {
	var result Result

	for i := range records {
		switch {
		case failures[i] != nil:
			result.Skipped = append(result.Skipped, failures[i])
		case records[i].ID != "":
			result.Records = append(result.Records, records[i])
		}
	}

	return result
}

// listAgents polls the listing until the requested number of containers exists, then returns
// the first Expected containers in replica order.
func (d *Discoverer) listAgents(ctx context.Context, opts Options) ([]container.Summary, error) {
	var (
		containers []container.Summary
		listed     bool
	)

	listOptions := container.ListOptions{
		All:     true,
		Filters: docker.ServiceFilter(opts.Project, opts.Service),
	}

	err := poll.Until(ctx, opts.Poll, func(ctx context.Context) (bool, error) {
		found, err := d.api.ContainerList(ctx, listOptions)
		if err != nil {
			if netretry.IsRetryable(err) {
				return false, err
			}

			return false, poll.Permanent(err)
		}

		containers, listed = found, true

		return len(found) >= opts.Expected, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, poll.ErrConditionNotMet) && listed:
		d.logger.WithField("found", len(containers)).Debug("agent listing incomplete")
	default:
		return nil, fmt.Errorf("list agent containers: %w", err)
	}

	docker.SortByReplica(containers)

	if len(containers) > opts.Expected {
		containers = containers[:opts.Expected]
	}

	return containers, nil
}

func (d *Discoverer) discoverAgent(
	ctx context.Context,
	summary container.Summary,
	opts Options,
) (AgentRecord, *AgentError) {
	record := AgentRecord{ID: summary.ID, Name: docker.ContainerName(summary)}
	logger := d.logger.WithField("agent", record.Name)

	cfg := opts.Poll
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		logger.WithFields(logrus.Fields{"attempt": attempt, "wait": wait}).WithError(err).Debug("agent not ready")
	}

	err := poll.Until(ctx, cfg, d.running(summary.ID))
	if err != nil {
		return record, agentError(record, ErrContainerNotRunning, err)
	}

	err = poll.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		inspect, inspectErr := d.inspect(ctx, summary.ID)
		if inspectErr != nil {
			return false, inspectErr
		}

		ip, ipErr := docker.ContainerIP(inspect, opts.PreferredNetwork)
		if ipErr != nil {
			return false, nil
		}

		record.IP = ip

		return true, nil
	})
	if err != nil {
		return record, agentError(record, ErrNoIPAddress, err)
	}

	logger.WithField("ip", record.IP).Debug("agent discovered")

	return record, nil
}

func (d *Discoverer) running(containerID string) poll.Condition {
	return func(ctx context.Context) (bool, error) {
		inspect, err := d.inspect(ctx, containerID)
		if err != nil {
			return false, err
		}

		if inspect.ContainerJSONBase == nil || inspect.State == nil {
			return false, nil
		}

		return inspect.State.Running, nil
	}
}

func (d *Discoverer) inspect(ctx context.Context, containerID string) (container.InspectResponse, error) {
	inspect, err := d.api.ContainerInspect(ctx, containerID)
	if err == nil {
		return inspect, nil
	}

	err = fmt.Errorf("inspect container %s: %w", containerID, err)
	if netretry.IsRetryable(err) {
		return inspect, err
	}

	return inspect, poll.Permanent(err)
}

func agentError(record AgentRecord, kind, err error) *AgentError {
	if errors.Is(err, poll.ErrConditionNotMet) {
		return &AgentError{ID: record.ID, Name: record.Name, Err: fmt.Errorf("%w: %w", kind, err)}
	}

	return &AgentError{ID: record.ID, Name: record.Name, Err: err}
}
