package cmd

import (
	"context"
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/jenkins-manager/pkg/di"
	"github.com/spf13/cobra"
)

// ConfigFlagName is the persistent flag selecting an explicit config file.
const ConfigFlagName = "config"

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command with subcommands resolving their
// dependencies from runtimeContainer.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jenkins-manager",
		Short: "Provision a Jenkins controller and SSH agents with docker compose",
		Long: `jenkins-manager provisions a Jenkins controller and a fleet of SSH agents with docker compose.

It generates an agent keypair, scales the agent service, waits for every agent to be
running and addressable, writes the Jenkins Configuration-as-Code file for those agents
and finally starts the controller.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(
		ConfigFlagName,
		"",
		"Path to a jenkins-manager config file (default ./jenkins-manager.yaml)",
	)

	cmd.AddCommand(NewProvisionCmd(runtimeContainer))
	cmd.AddCommand(NewCleanCmd(runtimeContainer))
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// Execute runs the provided root command with ctx and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
