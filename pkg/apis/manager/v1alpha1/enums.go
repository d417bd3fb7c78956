package v1alpha1

import (
	"fmt"
	"strings"
)

// --- Keygen ---

// Keygen selects how the agent SSH keypair is generated.
type Keygen string

const (
	// KeygenNative generates the ed25519 keypair in process.
	KeygenNative Keygen = "native"
	// KeygenSSHKeygen shells out to ssh-keygen in a temporary directory.
	KeygenSSHKeygen Keygen = "ssh-keygen"
)

// Set for Keygen (pflag.Value interface).
func (k *Keygen) Set(value string) error {
	parsed, err := parseEnum(value, k.ValidValues(), ErrInvalidKeygen)
	if err != nil {
		return err
	}

	*k = Keygen(parsed)

	return nil
}

// String returns the string representation of the Keygen.
func (k *Keygen) String() string { return string(*k) }

// Type returns the flag type name.
func (k *Keygen) Type() string { return "Keygen" }

// Default returns KeygenNative.
func (k *Keygen) Default() any { return KeygenNative }

// ValidValues returns all valid Keygen values.
func (k *Keygen) ValidValues() []string {
	return []string{string(KeygenNative), string(KeygenSSHKeygen)}
}

// --- Generator ---

// Generator selects how the CasC file is produced.
type Generator string

const (
	// GeneratorTemplate renders the CasC template in process.
	GeneratorTemplate Generator = "template"
	// GeneratorExec runs an external generator with agent names followed by agent addresses.
	GeneratorExec Generator = "exec"
)

// Set for Generator (pflag.Value interface).
func (g *Generator) Set(value string) error {
	parsed, err := parseEnum(value, g.ValidValues(), ErrInvalidGenerator)
	if err != nil {
		return err
	}

	*g = Generator(parsed)

	return nil
}

// String returns the string representation of the Generator.
func (g *Generator) String() string { return string(*g) }

// Type returns the flag type name.
func (g *Generator) Type() string { return "Generator" }

// Default returns GeneratorTemplate.
func (g *Generator) Default() any { return GeneratorTemplate }

// ValidValues returns all valid Generator values.
func (g *Generator) ValidValues() []string {
	return []string{string(GeneratorTemplate), string(GeneratorExec)}
}

// --- TimeoutPolicy ---

// TimeoutPolicy decides what happens when an agent exhausts its discovery budget.
type TimeoutPolicy string

const (
	// TimeoutPolicyFail aborts the run with a discovery error.
	TimeoutPolicyFail TimeoutPolicy = "fail"
	// TimeoutPolicySkip drops the agent and continues with the remaining ones.
	TimeoutPolicySkip TimeoutPolicy = "skip"
)

// Set for TimeoutPolicy (pflag.Value interface).
func (p *TimeoutPolicy) Set(value string) error {
	parsed, err := parseEnum(value, p.ValidValues(), ErrInvalidTimeoutPolicy)
	if err != nil {
		return err
	}

	*p = TimeoutPolicy(parsed)

	return nil
}

// String returns the string representation of the TimeoutPolicy.
func (p *TimeoutPolicy) String() string { return string(*p) }

// Type returns the flag type name.
func (p *TimeoutPolicy) Type() string { return "TimeoutPolicy" }

// Default returns TimeoutPolicyFail.
func (p *TimeoutPolicy) Default() any { return TimeoutPolicyFail }

// ValidValues returns all valid TimeoutPolicy values.
func (p *TimeoutPolicy) ValidValues() []string {
	return []string{string(TimeoutPolicyFail), string(TimeoutPolicySkip)}
}

func parseEnum(value string, valid []string, sentinel error) (string, error) {
	for _, candidate := range valid {
		if strings.EqualFold(value, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf(
		"%w: %s (valid options: %s)",
		sentinel,
		value,
		strings.Join(valid, ", "),
	)
}
