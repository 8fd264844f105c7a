package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Default is the integrator name used when none is configured. It updates
// velocity first, then advances position with the new velocity.
const Default = "semi-implicit-euler"

var registry = map[string]func() dynamo.Integrator{
	"euler":               func() dynamo.Integrator { return NewEuler() },
	"semi-implicit-euler": func() dynamo.Integrator { return NewSemiImplicitEuler() },
	"rk4":                 func() dynamo.Integrator { return NewRK4() },
}

// Get returns a fresh integrator by name. RK4 keeps scratch buffers, so
// integrators are never shared between concurrent runs.
func Get(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
