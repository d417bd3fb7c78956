package v1alpha1

import "errors"

// ErrInvalidKeygen is returned when an unknown key generator is configured.
var ErrInvalidKeygen = errors.New("invalid keygen")

// ErrInvalidGenerator is returned when an unknown CasC generator is configured.
var ErrInvalidGenerator = errors.New("invalid generator")

// ErrInvalidTimeoutPolicy is returned when an unknown discovery timeout policy is configured.
var ErrInvalidTimeoutPolicy = errors.New("invalid timeout policy")

// ErrInvalidAgentCount is returned when the agent count is negative.
var ErrInvalidAgentCount = errors.New("agent count must be zero or greater")

// ErrInvalidDiscovery is returned when the discovery polling settings cannot be used.
var ErrInvalidDiscovery = errors.New("invalid discovery settings")

// ErrComposeFileRequired is returned when no compose file is configured.
var ErrComposeFileRequired = errors.New("compose file is required")

// ErrCasCOutputRequired is returned when no CasC output path is configured.
var ErrCasCOutputRequired = errors.New("casc output path is required")

// ErrCasCCommandRequired is returned when the exec generator has no command.
var ErrCasCCommandRequired = errors.New("casc command is required for the exec generator")
