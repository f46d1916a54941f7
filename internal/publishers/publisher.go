package publishers

import (
	"fmt"
	"sort"

	"proxytray/internal/factory"
)

// Publisher delivers a set of configurations to one target. params come from the
// publisher's section in config.yaml, overridden by --param.
type Publisher interface {
	Publish(cfgs []factory.Configuration, params map[string]interface{}) error
}

type Factory func() Publisher

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	registry[name] = factory
}

func Get(name string) (Publisher, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("publisher plugin '%s' not found", name)
	}
	return factory(), nil
}

// Names lists the registered publisher types.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
