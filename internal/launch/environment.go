// Package launch provides the process-wide environment that resolves module
// resources across the loaders introduced by the different phases of the
// host's startup. The environment is created once, captures the late-bound
// runtime loader at most once, and from then on serves lock-free concurrent
// lookups in a fixed shadowing order: runtime, early-extension, system.
package launch

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/kingrea/strata/internal/inject"
	"github.com/kingrea/strata/internal/priv"
	"github.com/kingrea/strata/internal/reader"
	"github.com/kingrea/strata/internal/source"
)

// moduleSuffix is the fixed mapping from a dotted module name to its
// resource path: dots become path separators and this suffix is appended.
const moduleSuffix = ".go"

// Lifecycle states. Transitions only move forward and each edge is taken at
// most once for the process lifetime.
const (
	stateUninitialized int32 = iota
	stateCreated
	stateRuntimeCaptured
)

var (
	lifecycle atomic.Int32
	instance  atomic.Pointer[Environment]
)

// Environment owns the ordered set of loader sources. system and
// earlyExtension are fixed at creation; runtime appears at most once,
// mid-startup, and every field is immutable after that.
type Environment struct {
	system         source.Source
	earlyExtension source.Source
	runtime        atomic.Pointer[runtimeSlot]

	ownLocation string
	injector    *inject.Injector
	log         zerolog.Logger
}

type runtimeSlot struct {
	loader source.Source
}

// Option customizes Create.
type Option func(*Environment)

// WithOwnLocation supplies the service's backing location, injected into the
// runtime loader first during propagation so code resolved through it can
// still reach the service's own artifacts.
func WithOwnLocation(location string) Option {
	return func(e *Environment) {
		e.ownLocation = strings.TrimSpace(location)
	}
}

// WithLogger overrides the environment's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Environment) {
		e.log = log
	}
}

// WithInjector overrides the extension injector. Tests use this to pin the
// strategy chain.
func WithInjector(injector *inject.Injector) Option {
	return func(e *Environment) {
		e.injector = injector
	}
}

// Create establishes the process environment with the two always-present
// sources. A second call fails with ErrAlreadyCreated: creation ordering is
// the host's responsibility and a repeat signals a bug, not a condition to
// recover from.
//
// The privileged lookup handle is acquired here, once and best-effort; when
// acquisition fails the injector simply runs without its privileged
// strategy.
func Create(system, earlyExtension source.Source, opts ...Option) error {
	if system == nil || earlyExtension == nil {
		return fmt.Errorf("launch: system and early-extension sources are required")
	}
	env := &Environment{
		system:         system,
		earlyExtension: earlyExtension,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(env)
	}
	if env.injector == nil {
		handle, err := priv.Acquire()
		if err != nil {
			env.log.Warn().Err(err).Msg("privileged lookup handle unavailable")
		}
		env.injector = inject.New(handle, env.log)
	}
	if !lifecycle.CompareAndSwap(stateUninitialized, stateCreated) {
		return ErrAlreadyCreated
	}
	instance.Store(env)
	return nil
}

// Get returns the process environment, or ErrNotCreated before Create.
func Get() (*Environment, error) {
	env := instance.Load()
	if env == nil {
		return nil, ErrNotCreated
	}
	return env, nil
}

// MustGet panics when the environment does not exist yet. Reaching for the
// environment before Create is an ordering bug in the host.
func MustGet() *Environment {
	env, err := Get()
	if err != nil {
		panic(err)
	}
	return env
}

// CaptureRuntimeLoader stores the late-bound runtime loader exactly once and
// immediately propagates into it the service's own backing location followed
// by every location already known to the early-extension source. Failed
// injections are logged and absorbed: some resources stay unreachable
// through the new loader, which beats aborting startup.
func (e *Environment) CaptureRuntimeLoader(loader source.Source) error {
	if loader == nil {
		return fmt.Errorf("launch: runtime loader is required")
	}
	if !lifecycle.CompareAndSwap(stateCreated, stateRuntimeCaptured) {
		return ErrAlreadyCaptured
	}
	e.runtime.Store(&runtimeSlot{loader: loader})
	e.propagate(loader)
	return nil
}

// propagate pushes known locations into the freshly captured loader. Own
// location first, then the early-extension locations in their listed order.
func (e *Environment) propagate(loader source.Source) {
	if e.ownLocation != "" {
		if err := e.injector.Extend(loader, e.ownLocation); err != nil {
			e.log.Warn().Err(err).Str("location", e.ownLocation).
				Msg("could not inject own location into runtime loader")
		}
	}
	enum, ok := e.earlyExtension.(source.Enumerator)
	if !ok {
		e.log.Warn().Str("source", e.earlyExtension.Name()).
			Msg("early-extension source does not enumerate locations; skipping propagation")
		return
	}
	for _, location := range enum.Locations() {
		if err := e.injector.Extend(loader, location); err != nil {
			e.log.Warn().Err(err).Str("location", location).
				Msg("could not propagate location into runtime loader")
		}
	}
}

// System returns the system source.
func (e *Environment) System() source.Source {
	return e.system
}

// EarlyExtension returns the early-extension source.
func (e *Environment) EarlyExtension() source.Source {
	return e.earlyExtension
}

// Runtime returns the captured runtime loader, or nil before capture.
func (e *Environment) Runtime() source.Source {
	if slot := e.runtime.Load(); slot != nil {
		return slot.loader
	}
	return nil
}

// FindLoaderFor returns the first source that resolves resourceName, in the
// fixed order runtime, early-extension, system. The most recently activated,
// most specialized scope shadows the broader ones.
func (e *Environment) FindLoaderFor(resourceName string) (source.Source, error) {
	if runtime := e.Runtime(); runtime != nil && lookup(runtime, resourceName) {
		return runtime, nil
	}
	if lookup(e.earlyExtension, resourceName) {
		return e.earlyExtension, nil
	}
	if lookup(e.system, resourceName) {
		return e.system, nil
	}
	return nil, fmt.Errorf("launch: %s on any loader: %w", resourceName, source.ErrNotFound)
}

// FindLoaderForModule maps a dotted module name to its resource path and
// delegates to FindLoaderFor, converting a miss into ErrModuleNotFound.
func (e *Environment) FindLoaderForModule(qualifiedName string) (source.Source, error) {
	src, err := e.FindLoaderFor(ModuleResourcePath(qualifiedName))
	if err != nil {
		return nil, fmt.Errorf("launch: module %s: %w", qualifiedName, ErrModuleNotFound)
	}
	return src, nil
}

// FindResourceStream resolves resourceName and opens a stream from the
// winning source. Resolution and open are two steps; a resource that
// disappears in between surfaces as not-found here rather than as a nil
// stream.
func (e *Environment) FindResourceStream(resourceName string) (io.ReadCloser, error) {
	src, err := e.FindLoaderFor(resourceName)
	if err != nil {
		return nil, err
	}
	rc, err := src.Resolve(resourceName)
	if err != nil {
		return nil, fmt.Errorf("launch: open %s from %s: %w", resourceName, src.Name(), err)
	}
	return rc, nil
}

// ModuleReader buffers the module's resource fully and returns a structured
// reader over the bytes. An absent module fails with ErrModuleNotFound; a
// present but empty module yields a valid reader over zero bytes.
func (e *Environment) ModuleReader(qualifiedName string) (*reader.ModuleReader, error) {
	path := ModuleResourcePath(qualifiedName)
	stream, err := e.FindResourceStream(path)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, fmt.Errorf("launch: module %s: %w", qualifiedName, ErrModuleNotFound)
		}
		return nil, err
	}
	defer stream.Close()
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("launch: read module %s: %w", qualifiedName, err)
	}
	return reader.New(qualifiedName, path, data), nil
}

// ModuleResourcePath converts a dotted module name into its resource path.
func ModuleResourcePath(qualifiedName string) string {
	return strings.ReplaceAll(strings.TrimSpace(qualifiedName), ".", "/") + moduleSuffix
}

// lookup reports whether src currently resolves name. The probe stream is
// closed immediately; only the winning source matters here.
func lookup(src source.Source, name string) bool {
	rc, err := src.Resolve(name)
	if err != nil {
		return false
	}
	rc.Close()
	return true
}
