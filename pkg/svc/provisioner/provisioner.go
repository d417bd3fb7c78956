// Package provisioner brings up a Jenkins controller and its SSH agents with docker compose.
//
// A run generates a keypair, scales the agent service, waits for every agent to be running and
// addressable, writes the CasC file for those agents, then starts the controller. Steps run in
// order and the first failure aborts the run without rollback.
package provisioner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/devantler-tech/jenkins-manager/pkg/client/compose"
	"github.com/devantler-tech/jenkins-manager/pkg/client/docker"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/casc"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/cleaner"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/keypair"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/poll"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// AgentDiscoverer resolves agent containers into records.
type AgentDiscoverer interface {
	Discover(ctx context.Context, opts discovery.Options) (discovery.Result, error)
}

// ResourceCleaner reclaims Docker resources before a run.
type ResourceCleaner interface {
	Clean(ctx context.Context) (cleaner.Report, error)
}

// Options configures one provisioning run.
type Options struct {
	Agents   int
	Project  string
	Services compose.Services
	// PreferredNetwork is read first for agent and controller addresses.
	PreferredNetwork string
	Poll             poll.Config
	Concurrency      int
	OnTimeout        v1alpha1.TimeoutPolicy
	// Clean runs the cleaner before anything else.
	Clean bool
}

// Result describes a finished run.
type Result struct {
	Agents  []discovery.AgentRecord
	Skipped []*discovery.AgentError
	// JenkinsURL is empty when the controller address could not be resolved.
	JenkinsURL string
}

// Dependencies are the collaborators of a Provisioner.
type Dependencies struct {
	Keygen     keypair.Generator
	Compose    compose.Client
	Discoverer AgentDiscoverer
	Generator  casc.Generator
	// Cleaner is only required when Options.Clean is set.
	Cleaner ResourceCleaner
	Docker  docker.ContainerAPI
	Timer   timer.Timer
	Out     io.Writer
	Logger  logrus.FieldLogger
}

// Provisioner runs the provisioning steps.
type Provisioner struct {
	deps Dependencies
}

// NewProvisioner returns a Provisioner. Out defaults to os.Stdout, Timer to a wall-clock timer
// and Logger to a discarding logger.
func NewProvisioner(deps Dependencies) *Provisioner {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	if deps.Timer == nil {
		deps.Timer = timer.New()
	}

	if deps.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		deps.Logger = discard
	}

	return &Provisioner{deps: deps}
}

// Provision runs every step for opts. Zero agents is a successful no-op.
func (p *Provisioner) Provision(ctx context.Context, opts Options) (Result, error) {
	if opts.Agents < 0 {
		return Result{}, fmt.Errorf("%w: got %d", v1alpha1.ErrInvalidAgentCount, opts.Agents)
	}

	p.deps.Timer.Start()

	if opts.Clean {
		err := p.clean(ctx)
		if err != nil {
			return Result{}, err
		}
	}

	if opts.Agents == 0 {
		notify.Infof(p.deps.Out, "no agents requested, nothing to provision")

		return Result{}, nil
	}

	pair, err := p.generateKeypair(ctx)
	if err != nil {
		return Result{}, err
	}

	err = p.scaleAgents(ctx, opts, pair)
	if err != nil {
		return Result{}, err
	}

	discovered, err := p.discoverAgents(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	err = p.generateCasC(ctx, discovered.Records)
	if err != nil {
		return Result{}, err
	}

	err = p.startController(ctx, opts, pair)
	if err != nil {
		return Result{}, err
	}

	result := Result{Agents: discovered.Records, Skipped: discovered.Skipped}

	result.JenkinsURL, err = ResolveJenkinsURL(
		ctx,
		p.deps.Docker,
		opts.Project,
		opts.Services.Controller,
		opts.PreferredNetwork,
	)
	if err != nil {
		notify.Warningf(p.deps.Out, "could not resolve the Jenkins URL: %v", err)
		p.deps.Logger.WithError(err).Debug("jenkins url unresolved")
		notify.SuccessWithTimerf(p.deps.Out, p.deps.Timer, "jenkins started with %d agents", len(result.Agents))

		return result, nil
	}

	notify.SuccessWithTimerf(
		p.deps.Out,
		p.deps.Timer,
		"jenkins started with %d agents at %s",
		len(result.Agents),
		result.JenkinsURL,
	)

	return result, nil
}

func (p *Provisioner) clean(ctx context.Context) error {
	if p.deps.Cleaner == nil {
		return ErrCleanerRequired
	}

	notify.Titlef(p.deps.Out, "🧹", "Cleaning Docker resources...")

	_, err := p.deps.Cleaner.Clean(ctx)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	p.deps.Timer.NewStage()

	return nil
}

func (p *Provisioner) generateKeypair(ctx context.Context) (keypair.Keypair, error) {
	notify.Titlef(p.deps.Out, "🔑", "Generating SSH keypair...")

	pair, err := p.deps.Keygen.Generate(ctx)
	if err != nil {
		return keypair.Keypair{}, fmt.Errorf("generate keypair: %w", err)
	}

	notify.Successf(p.deps.Out, "keypair generated")
	p.deps.Timer.NewStage()

	return pair, nil
}

func (p *Provisioner) scaleAgents(ctx context.Context, opts Options, pair keypair.Keypair) error {
	notify.Titlef(p.deps.Out, "🐳", "Scaling agents...")
	notify.Activityf(p.deps.Out, "scaling %s to %d", opts.Services.Agent, opts.Agents)

	err := p.deps.Compose.Up(ctx, compose.UpOptions{
		Services: []string{opts.Services.Agent},
		Build:    true,
		Detach:   true,
		Scale:    map[string]int{opts.Services.Agent: opts.Agents},
		Env:      pair.Env(),
	})
	if err != nil {
		return fmt.Errorf("scale agents: %w", err)
	}

	notify.Successf(p.deps.Out, "%s scaled to %d", opts.Services.Agent, opts.Agents)
	p.deps.Timer.NewStage()

	return nil
}

func (p *Provisioner) discoverAgents(ctx context.Context, opts Options) (discovery.Result, error) {
	notify.Titlef(p.deps.Out, "🔎", "Discovering agents...")

	result, err := p.deps.Discoverer.Discover(ctx, discovery.Options{
		Project:          opts.Project,
		Service:          opts.Services.Agent,
		Expected:         opts.Agents,
		PreferredNetwork: opts.PreferredNetwork,
		Poll:             opts.Poll,
		Concurrency:      opts.Concurrency,
		OnTimeout:        opts.OnTimeout,
	})
	if err != nil {
		return discovery.Result{}, fmt.Errorf("discover agents: %w", err)
	}

	for _, skipped := range result.Skipped {
		notify.Warningf(p.deps.Out, "skipped %v", skipped)
	}

	for _, record := range result.Records {
		notify.Activityf(p.deps.Out, "%s at %s", record.Name, record.IP)
	}

	notify.Successf(p.deps.Out, "discovered %d of %d agents", len(result.Records), opts.Agents)
	p.deps.Timer.NewStage()

	return result, nil
}

func (p *Provisioner) generateCasC(ctx context.Context, records []discovery.AgentRecord) error {
	notify.Titlef(p.deps.Out, "📝", "Generating CasC...")

	err := p.deps.Generator.Generate(ctx, records)
	if err != nil {
		return fmt.Errorf("generate casc: %w", err)
	}

	notify.Generatef(p.deps.Out, "casc generated for %d agents", len(records))
	p.deps.Timer.NewStage()

	return nil
}

func (p *Provisioner) startController(ctx context.Context, opts Options, pair keypair.Keypair) error {
	notify.Titlef(p.deps.Out, "🚀", "Starting controller...")

	err := p.deps.Compose.Up(ctx, compose.UpOptions{
		Services: []string{opts.Services.Controller},
		Build:    true,
		Detach:   true,
		Env:      pair.Env(),
	})
	if err != nil {
		return fmt.Errorf("start controller: %w", err)
	}

	p.deps.Timer.NewStage()

	return nil
}
