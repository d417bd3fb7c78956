// Package schema generates the JSON schema of the jenkins-manager config file, for editor
// completion and validation of jenkins-manager.yaml.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/devantler-tech/jenkins-manager/pkg/apis/manager/v1alpha1"
	"github.com/invopop/jsonschema"
)

// durationPattern matches Go duration strings such as 2s, 1m30s or 500ms.
const durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// Generate returns the indented JSON schema of v1alpha1.Config.
func Generate() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    typeMapper,
	}

	schema := reflector.Reflect(&v1alpha1.Config{})
	schema.ID = ""
	schema.Title = "jenkins-manager configuration"
	schema.Description = "JSON schema for jenkins-manager.yaml"

	// Every key has a default.
	walk(schema, func(s *jsonschema.Schema) { s.Required = nil })

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}

func walk(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			walk(pair.Value, fn)
		}
	}

	walk(schema.Items, fn)
}

func typeMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeFor[time.Duration]():
		return &jsonschema.Schema{Type: "string", Pattern: durationPattern}
	case reflect.TypeFor[v1alpha1.Keygen]():
		return enumSchema(new(v1alpha1.Keygen).ValidValues())
	case reflect.TypeFor[v1alpha1.Generator]():
		return enumSchema(new(v1alpha1.Generator).ValidValues())
	case reflect.TypeFor[v1alpha1.TimeoutPolicy]():
		return enumSchema(new(v1alpha1.TimeoutPolicy).ValidValues())
	default:
		return nil
	}
}

func enumSchema(values []string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, value := range values {
		enum[i] = value
	}

	return &jsonschema.Schema{Type: "string", Enum: enum}
}
