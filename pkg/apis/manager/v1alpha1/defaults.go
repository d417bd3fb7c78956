package v1alpha1

import "time"

// Default values.
const (
	DefaultComposeFile          = "docker-compose.yml"
	DefaultAgentCount           = 1
	DefaultDiscoveryAttempts    = 20
	DefaultDiscoveryInterval    = 2 * time.Second
	DefaultDiscoveryMultiplier  = 1.0
	DefaultDiscoveryMaxInterval = 10 * time.Second
	DefaultDiscoveryConcurrency = 4
	DefaultCasCTemplate         = "jenkins/casc.yaml.tmpl"
	DefaultCasCOutput           = "jenkins/casc.generated.yaml"
	DefaultLogFile              = "debug/jenkins-manager.log"
	DefaultLogLevel             = "info"
)

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Compose: Compose{File: DefaultComposeFile},
		Agents:  Agents{Count: DefaultAgentCount},
		Keygen:  KeygenNative,
		Discovery: Discovery{
			Attempts:    DefaultDiscoveryAttempts,
			Interval:    DefaultDiscoveryInterval,
			Multiplier:  DefaultDiscoveryMultiplier,
			MaxInterval: DefaultDiscoveryMaxInterval,
			Concurrency: DefaultDiscoveryConcurrency,
			OnTimeout:   TimeoutPolicyFail,
		},
		CasC: CasC{
			Generator: GeneratorTemplate,
			Template:  DefaultCasCTemplate,
			Output:    DefaultCasCOutput,
		},
		Log: Log{File: DefaultLogFile, Level: DefaultLogLevel},
	}
}
