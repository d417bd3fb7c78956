package compose

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Errors returned while reading compose files.
var (
	// ErrServiceNotFound is returned when a required service cannot be detected.
	ErrServiceNotFound = errors.New("service not found in compose file")
	// ErrAmbiguousService is returned when more than one service matches a role.
	ErrAmbiguousService = errors.New("more than one service matches")
)

const controllerServiceName = "jenkins"

var invalidProjectChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// File is the subset of a compose file jenkins-manager reads.
type File struct {
	Name     string              `yaml:"name"`
	Services map[string]yaml.Node `yaml:"services"`
}

// Services names the agent and controller services of a compose project.
type Services struct {
	Agent      string
	Controller string
}

// LoadFile parses the compose file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read compose file %s: %w", path, err)
	}

	var file File

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parse compose file %s: %w", path, err)
	}

	return &file, nil
}

// ServiceNames returns the sorted service names.
func (f *File) ServiceNames() []string {
	names := make([]string, 0, len(f.Services))
	for name := range f.Services {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DetectServices finds the agent service (name contains "agent") and the controller service
// (named "jenkins", or containing "controller"). Explicit names in override take precedence.
func (f *File) DetectServices(override Services) (Services, error) {
	detected := override

	if detected.Agent == "" {
		agent, err := f.matchOne("agent", func(name string) bool {
			return strings.Contains(name, "agent")
		})
		if err != nil {
			return Services{}, err
		}

		detected.Agent = agent
	}

	if detected.Controller == "" {
		if _, ok := f.Services[controllerServiceName]; ok {
			detected.Controller = controllerServiceName
		} else {
			controller, err := f.matchOne("controller", func(name string) bool {
				return strings.Contains(name, "controller")
			})
			if err != nil {
				return Services{}, err
			}

			detected.Controller = controller
		}
	}

	return detected, nil
}

func (f *File) matchOne(role string, match func(string) bool) (string, error) {
	var matches []string

	for _, name := range f.ServiceNames() {
		if match(name) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no %s service", ErrServiceNotFound, role)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf(
			"%w: %s service candidates %s",
			ErrAmbiguousService,
			role,
			strings.Join(matches, ", "),
		)
	}
}

// ProjectName resolves the compose project name the way docker compose does: an explicit name,
// then COMPOSE_PROJECT_NAME from the environment or the .env file beside the compose file,
// then the file's top-level name, then the directory holding the file.
func ProjectName(explicit string, file *File, path string) string {
	if explicit != "" {
		return normalizeProjectName(explicit)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	dir := filepath.Dir(abs)

	if env := os.Getenv(ProjectNameEnv); env != "" {
		return normalizeProjectName(env)
	}

	// A missing or unreadable .env is ignored, as compose does.
	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err == nil && dotenv[ProjectNameEnv] != "" {
		return normalizeProjectName(dotenv[ProjectNameEnv])
	}

	if file != nil && file.Name != "" {
		return normalizeProjectName(file.Name)
	}

	return normalizeProjectName(filepath.Base(dir))
}

// ProjectNameEnv is the environment variable docker compose reads the project name from.
const ProjectNameEnv = "COMPOSE_PROJECT_NAME"

// DefaultNetwork returns the name of the network compose creates for project.
func DefaultNetwork(project string) string {
	return project + "_default"
}

func normalizeProjectName(name string) string {
	return invalidProjectChars.ReplaceAllString(strings.ToLower(name), "")
}
