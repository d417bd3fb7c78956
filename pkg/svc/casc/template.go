package casc

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/devantler-tech/jenkins-manager/pkg/fsutil"
	"github.com/devantler-tech/jenkins-manager/pkg/svc/discovery"
	"sigs.k8s.io/yaml"
)

// DefaultCredentialsID is the Jenkins credential id the default template binds agents to.
const DefaultCredentialsID = "jenkins-agent-ssh"

// ErrInvalidOutput is returned when a template renders something that is not YAML.
var ErrInvalidOutput = errors.New("rendered CasC is not valid YAML")

//go:embed assets/casc.yaml.tmpl
var defaultTemplate []byte

// TemplateData is the value the CasC template is executed with.
type TemplateData struct {
	Agents        []discovery.AgentRecord
	CredentialsID string
}

// TemplateGenerator renders a text/template with sprig functions into the output file.
type TemplateGenerator struct {
	templatePath string
	outputPath   string
}

var _ Generator = (*TemplateGenerator)(nil)

// NewTemplateGenerator renders templatePath into outputPath. The built-in template is used when
// templatePath is empty or does not exist.
func NewTemplateGenerator(templatePath, outputPath string) *TemplateGenerator {
	return &TemplateGenerator{templatePath: templatePath, outputPath: outputPath}
}

// Generate renders the template for agents and replaces the output file.
func (g *TemplateGenerator) Generate(ctx context.Context, agents []discovery.AgentRecord) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("generate casc: %w", err)
	}

	rendered, err := g.Render(agents)
	if err != nil {
		return err
	}

	err = fsutil.WriteFileAtomic(g.outputPath, rendered, fsutil.FilePermWorldRead)
	if err != nil {
		return fmt.Errorf("write casc: %w", err)
	}

	return nil
}

// Render executes the template for agents and checks that the result parses as YAML.
func (g *TemplateGenerator) Render(agents []discovery.AgentRecord) ([]byte, error) {
	source, _, err := fsutil.ReadFileOrDefault(g.templatePath, defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("load casc template: %w", err)
	}

	tmpl, err := template.New("casc").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("parse casc template %s: %w", g.templatePath, err)
	}

	if agents == nil {
		agents = []discovery.AgentRecord{}
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, TemplateData{Agents: agents, CredentialsID: DefaultCredentialsID})
	if err != nil {
		return nil, fmt.Errorf("render casc template: %w", err)
	}

	var parsed map[string]any

	err = yaml.Unmarshal(buf.Bytes(), &parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	return buf.Bytes(), nil
}
