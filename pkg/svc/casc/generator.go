// Package casc produces the Jenkins Configuration-as-Code file from discovered agents.
//
// Two generators exist: TemplateGenerator renders a Go template in process, and ExecGenerator
// runs an external program with agent names followed by agent addresses.
package casc

import (
	"context"

	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
)

// Generator writes the CasC file for a set of agents.
type Generator interface {
	Generate(ctx context.Context, agents []discovery.AgentRecord) error
}
