// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME} placeholders. A bare $VAR is left alone so shell fragments in
// generator commands survive.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expand replaces ${VAR_NAME} placeholders with their environment variable values.
// Unset variables expand to an empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// ExpandAll expands every element of values in place and returns values.
func ExpandAll(values []string) []string {
	for i, value := range values {
		values[i] = Expand(value)
	}

	return values
}
