// Package inject widens the search path of an already-constructed loader.
// Loaders captured late in the launch sequence were not built to be told
// about new locations, so the injector runs an ordered chain of strategies,
// from the sanctioned public API down to direct state mutation, stopping at
// the first one that succeeds.
package inject

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kingrea/strata/internal/priv"
)

// Strategy attempts one mechanism for adding a search location to a loader.
// Implementations must either fully apply the location or leave the loader
// untouched; a partial attempt would corrupt state for later strategies.
type Strategy interface {
	Name() string
	TryExtend(loader any, location string) error
}

// Injector runs the strategy chain. The order is fixed and significant:
// safer strategies always run before more invasive ones, and strategies are
// never retried within a single Extend call.
type Injector struct {
	strategies []Strategy
	log        zerolog.Logger
}

// New assembles the standard chain. A nil handle disables the privileged
// call strategy for the process lifetime; the public API and state mutation
// strategies are always present.
func New(handle *priv.Handle, log zerolog.Logger) *Injector {
	strategies := []Strategy{publicAPI{}}
	if handle != nil {
		strategies = append(strategies, privilegedCall{handle: handle})
	}
	strategies = append(strategies, stateMutation{})
	return &Injector{strategies: strategies, log: log}
}

// NewWithStrategies builds an injector over an explicit chain, preserving
// the given order. Used by tests and by hosts with platform-specific chains.
func NewWithStrategies(log zerolog.Logger, strategies ...Strategy) *Injector {
	return &Injector{strategies: strategies, log: log}
}

// Extend makes loader additionally search location. It returns nil as soon
// as one strategy succeeds and an error describing every attempt when the
// chain is exhausted. Callers at the capture boundary absorb that error;
// partial functionality beats aborting startup.
func (inj *Injector) Extend(loader any, location string) error {
	if loader == nil {
		return fmt.Errorf("inject: loader is required")
	}
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("inject: location is required")
	}
	var attempts []string
	for _, strategy := range inj.strategies {
		err := strategy.TryExtend(loader, location)
		if err == nil {
			inj.log.Debug().
				Str("strategy", strategy.Name()).
				Str("location", location).
				Msg("loader extended")
			return nil
		}
		inj.log.Debug().
			Str("strategy", strategy.Name()).
			Str("location", location).
			Err(err).
			Msg("extension strategy failed")
		attempts = append(attempts, fmt.Sprintf("%s: %v", strategy.Name(), err))
	}
	return fmt.Errorf("inject: could not add %s to loader: %s", location, strings.Join(attempts, "; "))
}
