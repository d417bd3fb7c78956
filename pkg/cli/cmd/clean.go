package cmd

import (
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/di"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/cleaner"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/spf13/cobra"
)

const cleanLongDesc = `Remove Docker resources on this host.

Stops and removes every container, force-removes every image, removes every volume,
prunes the build cache and removes user-defined networks, then prints the remaining
disk usage. Nothing is scoped to the compose project and nothing is confirmed.`

// NewCleanCmd creates and returns the clean command.
func NewCleanCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:           "clean",
		Short:         "Remove all Docker containers, images, volumes, networks and build cache",
		Long:          cleanLongDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          di.RunEWithRuntime(runtimeContainer, di.WithTimer(runClean)),
	}
}

func runClean(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
	cmd.SetOut(notify.NewStageSeparatingWriter(cmd.OutOrStdout()))
	tmr.Start()

	_, cfg, err := loadConfig(cmd, tmr, nil)
	if err != nil {
		return err
	}

	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Close() }()

	dockerClient, err := di.ResolveDockerClient(injector)
	if err != nil {
		return err
	}

	defer func() { _ = dockerClient.Close() }()

	notify.Titlef(cmd.OutOrStdout(), "🧹", "Cleaning Docker resources...")

	report, err := cleaner.NewCleaner(dockerClient, cmd.OutOrStdout(), logger).Clean(cmd.Context())
	if err != nil {
		logger.WithError(err).Error("cleanup failed")

		return fmt.Errorf("clean: %w", err)
	}

	if failed := report.Failed(); failed > 0 {
		notify.Warningf(cmd.OutOrStdout(), "%d resources could not be removed", failed)
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), tmr, "docker resources cleaned")

	return nil
}
