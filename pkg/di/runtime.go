// Package di wires jenkins-manager services with samber/do.
//
// A Runtime holds modules that register providers. Every Invoke builds a fresh injector, runs
// the modules in order, calls the handler and shuts the injector down.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers providers with an injector.
type Module func(Injector) error

// Runtime is a reusable set of modules.
type Runtime struct {
	modules []Module
}

// New creates a Runtime from modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the runtime's modules and extraModules on a fresh injector, then handler.
// Module errors are returned unwrapped and stop the invocation before handler runs.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer injector.Shutdown()

	modules := make([]Module, 0, len(r.modules)+len(extraModules))
	modules = append(modules, r.modules...)
	modules = append(modules, extraModules...)

	for _, module := range modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to a cobra RunE function backed by runtime.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
