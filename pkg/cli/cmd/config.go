package cmd

import (
	"fmt"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	configmanager "github.com/devantler-tech/jenkins-manager/pkg/io/config-manager"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/logging"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// loadConfig reads the configuration for cmd with its flags bound according to bindings.
func loadConfig(
	cmd *cobra.Command,
	tmr timer.Timer,
	bindings map[string]string,
) (*configmanager.ConfigManager, *v1alpha1.Config, error) {
	var configFile string
	if flag := cmd.Flag(ConfigFlagName); flag != nil {
		configFile = flag.Value.String()
	}

	cfgManager := configmanager.NewConfigManager(cmd.OutOrStdout(), configFile)

	err := cfgManager.BindFlags(cmd.Flags(), bindings)
	if err != nil {
		return nil, nil, fmt.Errorf("bind flags: %w", err)
	}

	cfg, err := cfgManager.Load(configmanager.LoadOptions{Timer: tmr})
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	return cfgManager, cfg, nil
}

// openLogger opens the debug log configured in cfg.
func openLogger(cfg *v1alpha1.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	return logger, nil
}
