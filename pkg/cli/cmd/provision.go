package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/devantler-tech/jenkins-manager/pkg/cli/ui/prompt"
	"github.com/devantler-tech/jenkins-manager/pkg/client/compose"
	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
	"github.com/devantler-tech/jenkins-manager/pkg/di"
	configmanager "github.com/devantler-tech/jenkins-manager/pkg/io/config-manager"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/casc"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/cleaner"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/keypair"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/poll"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/provisioner"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/spf13/cobra"
)

const provisionLongDesc = `Provision a Jenkins controller and its SSH agents.

The run generates an SSH keypair, scales the agent service with docker compose, waits
until every agent container is running and has an address, writes the CasC file for
the discovered agents and starts the controller.

The agent count is resolved in the following priority order:
  1. From --agents flag
  2. From JENKINS_MANAGER_AGENTS_COUNT or jenkins-manager.yaml (if present)
  3. From an interactive prompt when stdin is a terminal
  4. Defaults to 1

Agent and controller services are detected from the compose file unless configured.

--clean removes every Docker resource on the host before anything else, even when the
agent count is 0.`

const agentsFlagName = "agents"

// newPrompter builds the agent count prompt. Tests replace it to simulate a terminal.
//
//nolint:gochecknoglobals // dependency injection for tests
var newPrompter = prompt.New

// provisionFlagBindings maps configuration keys to provision flags.
func provisionFlagBindings() map[string]string {
	return map[string]string{
		"agents.count":        agentsFlagName,
		"compose.file":        "compose-file",
		"compose.project":     "project",
		"keygen":              "keygen",
		"casc.generator":      "generator",
		"discovery.onTimeout": "on-timeout",
		"provision.clean":     "clean",
		"provision.timeout":   "timeout",
	}
}

// NewProvisionCmd creates and returns the provision command.
func NewProvisionCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var (
		keygenFlag    v1alpha1.Keygen
		generatorFlag v1alpha1.Generator
		onTimeoutFlag v1alpha1.TimeoutPolicy
	)

	cmd := &cobra.Command{
		Use:           "provision",
		Short:         "Provision the Jenkins controller and agents",
		Long:          provisionLongDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          di.RunEWithRuntime(runtimeContainer, di.WithTimer(runProvision)),
	}

	flags := cmd.Flags()
	flags.IntP(agentsFlagName, "n", 0, "Number of Jenkins agents to provision")
	flags.StringP("compose-file", "f", "", "Path to the docker compose file")
	flags.StringP("project", "p", "", "Docker compose project name")
	flags.Bool("clean", false, "Remove all Docker resources before provisioning")
	flags.Var(&keygenFlag, "keygen", fmt.Sprintf("SSH keypair generator %s", keygenFlag.ValidValues()))
	flags.Var(
		&generatorFlag,
		"generator",
		fmt.Sprintf("CasC generator %s", generatorFlag.ValidValues()),
	)
	flags.Var(
		&onTimeoutFlag,
		"on-timeout",
		fmt.Sprintf("What to do with agents that never become ready %s", onTimeoutFlag.ValidValues()),
	)
	flags.Duration("timeout", 0, "Deadline for the whole run (0 disables it)")

	return cmd
}

func runProvision(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
	cmd.SetOut(notify.NewStageSeparatingWriter(cmd.OutOrStdout()))
	tmr.Start()

	cfgManager, cfg, err := loadConfig(cmd, tmr, provisionFlagBindings())
	if err != nil {
		return err
	}

	agents, err := resolveAgentCount(cmd, cfgManager, cfg)
	if err != nil {
		return err
	}

	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Close() }()

	ctx, cancel := withTimeout(cmd.Context(), cfg.Provision.Timeout)
	defer cancel()

	dockerClient, err := di.ResolveDockerClient(injector)
	if err != nil {
		return err
	}

	defer func() { _ = dockerClient.Close() }()

	commandRunner, err := di.ResolveCommandRunner(injector)
	if err != nil {
		return err
	}

	opts := provisioner.Options{
		Agents:      agents,
		Project:     cfg.Compose.Project,
		Poll:        pollConfig(cfg.Discovery),
		Concurrency: cfg.Discovery.Concurrency,
		OnTimeout:   cfg.Discovery.OnTimeout,
		Clean:       cfg.Provision.Clean,
	}

	if agents > 0 {
		err = resolveComposeTarget(cfg.Compose, &opts)
		if err != nil {
			return err
		}
	}

	logger.WithField("agents", agents).WithField("project", opts.Project).Info("provisioning")

	result, err := provisioner.NewProvisioner(provisioner.Dependencies{
		Keygen:     newKeygen(cfg.Keygen, commandRunner),
		Compose:    compose.NewCLI(commandRunner, cfg.Compose.File, opts.Project),
		Discoverer: discovery.NewDiscoverer(dockerClient, logger),
		Generator:  newCasCGenerator(cfg.CasC, commandRunner),
		Cleaner:    cleaner.NewCleaner(dockerClient, cmd.OutOrStdout(), logger),
		Docker:     dockerClient,
		Timer:      tmr,
		Out:        cmd.OutOrStdout(),
		Logger:     logger,
	}).Provision(ctx, opts)
	if err != nil {
		logger.WithError(err).Error("provisioning failed")

		return err
	}

	logger.WithField("agents", len(result.Agents)).WithField("url", result.JenkinsURL).Info("provisioned")

	return nil
}

// resolveAgentCount prompts for the agent count when neither a flag, the environment nor the
// config file set it and stdin is a terminal.
func resolveAgentCount(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	cfg *v1alpha1.Config,
) (int, error) {
	if cmd.Flags().Changed(agentsFlagName) || cfgManager.IsExplicit("agents.count") {
		return cfg.Agents.Count, nil
	}

	prompter := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if !prompter.Interactive() {
		return cfg.Agents.Count, nil
	}

	count, err := prompter.AgentCount(cfg.Agents.Count)
	if err != nil {
		return 0, fmt.Errorf("prompt agent count: %w", err)
	}

	return count, nil
}

// resolveComposeTarget reads the compose file to fill in the project, services and network.
func resolveComposeTarget(cfg v1alpha1.Compose, opts *provisioner.Options) error {
	file, err := compose.LoadFile(cfg.File)
	if err != nil {
		return err //nolint:wrapcheck // already carries the file context
	}

	services, err := file.DetectServices(compose.Services{
		Agent:      cfg.AgentService,
		Controller: cfg.ControllerService,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.File, err)
	}

	opts.Services = services
	opts.Project = compose.ProjectName(cfg.Project, file, cfg.File)
	opts.PreferredNetwork = compose.DefaultNetwork(opts.Project)

	return nil
}

func pollConfig(cfg v1alpha1.Discovery) poll.Config {
	return poll.Config{
		Attempts:    cfg.Attempts,
		Interval:    cfg.Interval,
		Multiplier:  cfg.Multiplier,
		MaxInterval: cfg.MaxInterval,
	}
}

//nolint:ireturn // the configured generator is chosen at runtime
func newKeygen(kind v1alpha1.Keygen, commandRunner runner.CommandRunner) keypair.Generator {
	if kind == v1alpha1.KeygenSSHKeygen {
		return keypair.NewSSHKeygenGenerator(commandRunner)
	}

	return keypair.NewNativeGenerator()
}

//nolint:ireturn // the configured generator is chosen at runtime
func newCasCGenerator(cfg v1alpha1.CasC, commandRunner runner.CommandRunner) casc.Generator {
	if cfg.Generator == v1alpha1.GeneratorExec {
		return casc.NewExecGenerator(commandRunner, cfg.Command)
	}

	return casc.NewTemplateGenerator(cfg.Template, cfg.Output)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
