// Package plugins turns module sources resolved through the launch
// environment into registered modules. Definitions are authored as Go files
// exposing a ModuleDefinitions() function; the evaluated payloads pass
// through the same YAML schema used for inline definitions.
package plugins

import (
	"fmt"
	"strings"

	"github.com/kingrea/strata/internal/module"
)

// ModuleDefinition describes one module declared by a resolved source file.
type ModuleDefinition struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string        `json:"version" yaml:"version"`
	Locations   []string      `json:"locations,omitempty" yaml:"locations,omitempty"`
	Config      module.Config `json:"config,omitempty" yaml:"config,omitempty"`
}

// Normalized returns a trimmed copy of the definition.
func (def ModuleDefinition) Normalized() ModuleDefinition {
	clone := ModuleDefinition{
		ID:          strings.TrimSpace(def.ID),
		Name:        strings.TrimSpace(def.Name),
		Description: strings.TrimSpace(def.Description),
		Version:     strings.TrimSpace(def.Version),
	}
	if len(def.Locations) > 0 {
		clone.Locations = make([]string, 0, len(def.Locations))
		for _, loc := range def.Locations {
			trimmed := strings.TrimSpace(loc)
			if trimmed == "" {
				continue
			}
			clone.Locations = append(clone.Locations, trimmed)
		}
	}
	if len(def.Config) > 0 {
		clone.Config = make(module.Config, len(def.Config))
		for key, value := range def.Config {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Config[trimmed] = value
		}
	}
	return clone
}

// Validate ensures the definition is well-formed.
func (def ModuleDefinition) Validate() error {
	normalized := def.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if normalized.Version == "" {
		return fmt.Errorf("plugin %s: version is required", normalized.ID)
	}
	for idx, loc := range normalized.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("plugin %s: locations[%d] is empty", normalized.ID, idx)
		}
	}
	return nil
}

// definedModule adapts a parsed definition to the module.Module contract.
type definedModule struct {
	def ModuleDefinition
	cfg module.Config
}

func newDefinedModule(def ModuleDefinition, cfg module.Config) (module.Module, error) {
	normalized := def.Normalized()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	merged := make(module.Config, len(normalized.Config)+len(cfg))
	for key, value := range normalized.Config {
		merged[key] = value
	}
	for key, value := range cfg {
		merged[key] = value
	}
	return &definedModule{def: normalized, cfg: merged}, nil
}

// Info implements module.Module.
func (m *definedModule) Info() module.Info {
	return module.Info{
		ID:          m.def.ID,
		Name:        m.def.Name,
		Description: m.def.Description,
		Version:     m.def.Version,
	}
}

// Locations implements module.Module.
func (m *definedModule) Locations() []string {
	return append([]string{}, m.def.Locations...)
}
