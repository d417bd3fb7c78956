// Package configmanager loads the jenkins-manager configuration.
//
// Configuration priority: defaults < config file < environment variables < flags.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/devantler-tech/jenkins-manager/pkg/fsutil"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Names used to locate configuration.
const (
	// EnvPrefix prefixes every environment variable override, e.g. JENKINS_MANAGER_AGENTS_COUNT.
	EnvPrefix = "JENKINS_MANAGER"
	// ConfigName is the config file name without extension.
	ConfigName = "jenkins-manager"
	// UserConfigDir is searched after the working directory.
	UserConfigDir = "~/.config/jenkins-manager"
)

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Timer enables timing output in notifications when provided.
	Timer timer.Timer
	// Silent suppresses all loading notifications when true.
	Silent bool
	// IgnoreConfigFile skips reading on-disk config files when true (flags/defaults only).
	IgnoreConfigFile bool
	// SkipValidation skips config validation when true.
	SkipValidation bool
}

// ConfigManager loads a v1alpha1.Config through Viper.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Config
	// Writer receives loading notifications.
	Writer io.Writer

	configFile      string
	configLoaded    bool
	configFileFound bool
}

// NewConfigManager creates a manager searching the working directory and UserConfigDir.
// A non-empty configFile is read instead of searching.
func NewConfigManager(writer io.Writer, configFile string) *ConfigManager {
	return &ConfigManager{
		Viper:      InitializeViper(configFile),
		Config:     v1alpha1.NewConfig(),
		Writer:     writer,
		configFile: configFile,
	}
}

// InitializeViper returns a Viper instance with defaults, search paths and environment handling.
func InitializeViper(configFile string) *viper.Viper {
	viperInstance := viper.New()

	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.SetConfigName(ConfigName)
		viperInstance.SetConfigType("yaml")
		viperInstance.AddConfigPath(".")

		userDir, err := fsutil.ExpandHomePath(UserConfigDir)
		if err == nil {
			viperInstance.AddConfigPath(userDir)
		}
	}

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	setDefaults(viperInstance, v1alpha1.NewConfig())

	return viperInstance
}

func setDefaults(viperInstance *viper.Viper, defaults *v1alpha1.Config) {
	values := map[string]any{
		"compose.file":              defaults.Compose.File,
		"compose.project":           defaults.Compose.Project,
		"compose.agentService":      defaults.Compose.AgentService,
		"compose.controllerService": defaults.Compose.ControllerService,
		"agents.count":              defaults.Agents.Count,
		"keygen":                    string(defaults.Keygen),
		"discovery.attempts":        defaults.Discovery.Attempts,
		"discovery.interval":        defaults.Discovery.Interval,
		"discovery.multiplier":      defaults.Discovery.Multiplier,
		"discovery.maxInterval":     defaults.Discovery.MaxInterval,
		"discovery.concurrency":     defaults.Discovery.Concurrency,
		"discovery.onTimeout":       string(defaults.Discovery.OnTimeout),
		"casc.generator":            string(defaults.CasC.Generator),
		"casc.template":             defaults.CasC.Template,
		"casc.output":               defaults.CasC.Output,
		"casc.command":              defaults.CasC.Command,
		"provision.timeout":         defaults.Provision.Timeout,
		"provision.clean":           defaults.Provision.Clean,
		"log.file":                  defaults.Log.File,
		"log.level":                 defaults.Log.Level,
	}

	for key, value := range values {
		viperInstance.SetDefault(key, value)
	}
}

// BindFlags binds flags to configuration keys. bindings maps a configuration key such as
// "agents.count" to a flag name. Flags missing from flags are ignored.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %s to %s: %w", name, key, err)
		}
	}

	return nil
}

// Load loads the configuration with the specified options. The first successful load is cached.
func (m *ConfigManager) Load(opts LoadOptions) (*v1alpha1.Config, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig()
		if err != nil {
			return nil, err
		}
	}

	config := v1alpha1.NewConfig()

	err := m.Viper.Unmarshal(config, viper.DecodeHook(decodeHook()))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	config.ExpandEnvVars()

	if !opts.SkipValidation {
		err = config.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	m.Config = config
	m.configLoaded = true

	if !opts.Silent {
		m.notifyLoaded(opts.Timer)
	}

	return m.Config, nil
}

// IsExplicit reports whether key was set by the loaded config file or an environment variable.
// Defaults and flags are not considered; callers check flags with pflag's Changed.
func (m *ConfigManager) IsExplicit(key string) bool {
	if m.configFileFound && m.Viper.InConfig(key) {
		return true
	}

	_, ok := os.LookupEnv(EnvVar(key))

	return ok
}

// EnvVar returns the environment variable overriding key, e.g. JENKINS_MANAGER_AGENTS_COUNT.
func EnvVar(key string) string {
	return strings.ToUpper(EnvPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
}

// ConfigFileFound reports whether the last load read a config file.
func (m *ConfigManager) ConfigFileFound() bool {
	return m.configFileFound
}

func (m *ConfigManager) readConfig() error {
	err := m.Viper.ReadInConfig()
	if err == nil {
		m.configFileFound = true

		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if errors.As(err, &configFileNotFoundError) && m.configFile == "" {
		m.configFileFound = false

		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}

func (m *ConfigManager) notifyLoaded(tmr timer.Timer) {
	if m.Writer == nil {
		return
	}

	source := "defaults"
	if m.configFileFound {
		source = filepath.Base(m.Viper.ConfigFileUsed())
	}

	if tmr != nil {
		notify.SuccessWithTimerf(m.Writer, tmr, "config loaded from %s", source)

		return
	}

	notify.Successf(m.Writer, "config loaded from %s", source)
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		enumDecodeHook(),
	)
}
