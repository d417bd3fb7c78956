package discovery

import (
	"errors"
	"fmt"
	"strings"
)

// Errors describing why an agent could not be discovered.
var (
	// ErrContainerNotRunning is returned when an agent container never reached the running state.
	ErrContainerNotRunning = errors.New("agent container not running")
	// ErrNoIPAddress is returned when a running agent container never reported an address.
	ErrNoIPAddress = errors.New("agent container has no IP address")
	// ErrMissingAgents is returned when fewer agent containers exist than were requested.
	ErrMissingAgents = errors.New("fewer agent containers than requested")
	// ErrServiceRequired is returned when no agent service name is configured.
	ErrServiceRequired = errors.New("agent service name is required")
)

// AgentError records why a single agent container was not discovered.
type AgentError struct {
	ID   string
	Name string
	Err  error
}

// Error implements error.
func (e *AgentError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AgentError) Unwrap() error {
	return e.Err
}

// DiscoveryError aggregates every agent that failed discovery.
type DiscoveryError struct {
	Requested int
	Failures  []*AgentError
}

// Error implements error.
func (e *DiscoveryError) Error() string {
	messages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		messages = append(messages, failure.Error())
	}

	return fmt.Sprintf(
		"discovery failed for %d of %d agents: %s",
		len(e.Failures),
		e.Requested,
		strings.Join(messages, "; "),
	)
}

// Unwrap exposes the per-agent failures to errors.Is and errors.As.
func (e *DiscoveryError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		errs = append(errs, failure)
	}

	return errs
}
