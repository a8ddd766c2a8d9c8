package plugins

import (
	"fmt"

	"github.com/kingrea/strata/internal/module"
	"github.com/kingrea/strata/internal/reader"
)

// ModuleResolver is the slice of the launch environment this package needs.
type ModuleResolver interface {
	ModuleReader(qualifiedName string) (*reader.ModuleReader, error)
}

// RegisterEnvironmentModules resolves each qualified module name through the
// environment, evaluates its definitions, and registers a factory per
// definition. A duplicate module ID across sources is an error; the first
// resolution failure aborts since a missing module name in the host config
// is a configuration bug, not an optional feature.
func RegisterEnvironmentModules(reg *module.Registry, env ModuleResolver, qualifiedNames []string) error {
	if reg == nil || env == nil {
		return nil
	}
	seen := make(map[string]string)
	for _, name := range qualifiedNames {
		r, err := env.ModuleReader(name)
		if err != nil {
			return fmt.Errorf("plugin: resolve %s: %w", name, err)
		}
		defs, err := EvalDefinitions(r)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if origin, ok := seen[def.ID]; ok {
				return fmt.Errorf("plugin: duplicate module id %s (%s and %s)", def.ID, origin, name)
			}
			seen[def.ID] = name
			defCopy := def
			if err := reg.Register(defCopy.ID, func(cfg module.Config) (module.Module, error) {
				return newDefinedModule(defCopy, cfg)
			}); err != nil {
				return fmt.Errorf("plugin: register %s from %s: %w", def.ID, name, err)
			}
		}
	}
	return nil
}

// ContributedLocations collects, in registration order, every extra search
// location declared by the registered modules. The host injects these into
// the runtime loader alongside the environment's own propagation.
func ContributedLocations(reg *module.Registry) ([]string, error) {
	if reg == nil {
		return nil, nil
	}
	var locations []string
	seen := make(map[string]struct{})
	for _, id := range reg.IDs() {
		mod, err := reg.Resolve(id, nil)
		if err != nil {
			return nil, err
		}
		for _, loc := range mod.Locations() {
			if _, dup := seen[loc]; dup {
				continue
			}
			seen[loc] = struct{}{}
			locations = append(locations, loc)
		}
	}
	return locations, nil
}
