package v1alpha1

import (
	"errors"
	"fmt"
	"slices"
)

// Validate reports every problem with the configuration, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Compose.File == "" {
		errs = append(errs, ErrComposeFileRequired)
	}

	if c.Agents.Count < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidAgentCount, c.Agents.Count))
	}

	if !slices.Contains(c.Keygen.ValidValues(), string(c.Keygen)) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidKeygen, c.Keygen))
	}

	errs = append(errs, c.Discovery.validate()...)
	errs = append(errs, c.CasC.validate()...)

	return errors.Join(errs...)
}

func (d *Discovery) validate() []error {
	var errs []error

	if d.Attempts < 1 {
		errs = append(errs, fmt.Errorf("%w: attempts must be at least 1", ErrInvalidDiscovery))
	}

	if d.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%w: interval must be positive", ErrInvalidDiscovery))
	}

	if d.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("%w: multiplier must be at least 1", ErrInvalidDiscovery))
	}

	if d.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidDiscovery))
	}

	if !slices.Contains(d.OnTimeout.ValidValues(), string(d.OnTimeout)) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidTimeoutPolicy, d.OnTimeout))
	}

	return errs
}

func (c *CasC) validate() []error {
	var errs []error

	if !slices.Contains(c.Generator.ValidValues(), string(c.Generator)) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidGenerator, c.Generator))
	}

	if c.Output == "" && c.Generator == GeneratorTemplate {
		errs = append(errs, ErrCasCOutputRequired)
	}

	if c.Generator == GeneratorExec && len(c.Command) == 0 {
		errs = append(errs, ErrCasCCommandRequired)
	}

	return errs
}
