// Package module holds the registry of modules known to the host. The
// launch environment resolves module sources; this package tracks what was
// ultimately registered from them.
package module

import "fmt"

// Config represents module-specific configuration (opaque to the runtime).
type Config map[string]any

// Info describes a module's identity.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("module: id is required")
	}
	if i.Version == "" {
		return fmt.Errorf("module: version is required for %s", i.ID)
	}
	return nil
}

// Module is implemented by every registered unit.
type Module interface {
	Info() Info

	// Locations returns the extra search locations the module contributes.
	// These are the locations the host later injects into the runtime
	// loader.
	Locations() []string
}
